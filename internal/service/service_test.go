package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/config"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/logger"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/model"
)

func testLogger() *logger.Logger {
	return logger.New("error", "json")
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Already-slugged", "already-slugged"},
		{"Symbols & Punctuation!!", "symbols-punctuation"},
		{"MiXeD CaSe 123", "mixed-case-123"},
		{"---", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.title), "title %q", tt.title)
	}
}

func TestNormalizeEmail(t *testing.T) {
	got, err := normalizeEmail("  Reader@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", got)

	_, err = normalizeEmail("not-an-address")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = normalizeEmail("Name <reader@example.com>")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = normalizeEmail("")
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestScheduleCreateValidation(t *testing.T) {
	// Validation failures never reach the repositories, so a bare
	// service is enough here.
	svc := NewScheduleService(nil, nil, nil, nil, &config.Config{}, testLogger())

	_, err := svc.Create(context.Background(), ScheduleInput{
		Type:         model.ScheduledEmailTypeProduct,
		ProductTitle: "Widget",
		ProductLink:  "https://shop.example.com/widget",
		ScheduledFor: time.Now().Add(-time.Hour),
	})
	assert.ErrorIs(t, err, ErrScheduleInThePast)

	_, err = svc.Create(context.Background(), ScheduleInput{
		Type:         model.ScheduledEmailTypeProduct,
		ProductTitle: "Widget",
		ScheduledFor: time.Now().Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidScheduleRef)

	_, err = svc.Create(context.Background(), ScheduleInput{
		Type:         "postcard",
		ScheduledFor: time.Now().Add(time.Hour),
	})
	assert.Error(t, err)
}

func TestScheduleBuildMessageProduct(t *testing.T) {
	cfg := &config.Config{}
	cfg.Site.Name = "Aeon"
	cfg.Site.BaseURL = "https://aeon.example.com"
	svc := NewScheduleService(nil, nil, nil, nil, cfg, testLogger())

	subject, body, err := svc.buildMessage(context.Background(), model.ScheduledEmail{
		Type:         model.ScheduledEmailTypeProduct,
		ProductTitle: "Widget",
		ProductDesc:  "A fine widget.",
		ProductLink:  "https://shop.example.com/widget",
	})
	require.NoError(t, err)
	assert.Equal(t, "Aeon: Widget", subject)
	assert.Contains(t, body, "A fine widget.")
	assert.Contains(t, body, "https://shop.example.com/widget")

	_, _, err = svc.buildMessage(context.Background(), model.ScheduledEmail{Type: "postcard"})
	assert.Error(t, err)
}
