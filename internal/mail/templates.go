package mail

import "fmt"

// BlogAnnouncementHTML returns the HTML body for a new-post broadcast.
func BlogAnnouncementHTML(title, excerpt, postURL, siteName string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
</head>
<body style="margin:0;padding:0;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Helvetica,Arial,sans-serif;background-color:#f4f5f7;">
<table width="100%%" cellpadding="0" cellspacing="0" style="background-color:#f4f5f7;padding:40px 0;">
<tr><td align="center">
<table width="520" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;overflow:hidden;box-shadow:0 2px 8px rgba(0,0,0,0.08);">
  <tr><td style="padding:32px 40px 16px;">
    <p style="margin:0;font-size:13px;letter-spacing:2px;text-transform:uppercase;color:#8888a0;">New on the %s blog</p>
    <h1 style="margin:8px 0 0;font-size:26px;color:#1a1a2e;">%s</h1>
  </td></tr>
  <tr><td style="padding:16px 40px 24px;">
    <p style="margin:0;font-size:15px;color:#4a4a68;line-height:1.6;">%s</p>
  </td></tr>
  <tr><td style="padding:0 40px 32px;">
    <a href="%s" style="display:inline-block;background-color:#1a1a2e;color:#ffffff;text-decoration:none;font-size:15px;padding:12px 28px;border-radius:6px;">Read the post</a>
  </td></tr>
  <tr><td style="padding:16px 40px;background-color:#f9f9fc;border-top:1px solid #eeeef2;">
    <p style="margin:0;font-size:12px;color:#aaaabc;text-align:center;">
      You are receiving this because you subscribed to %s updates.
    </p>
  </td></tr>
</table>
</td></tr>
</table>
</body>
</html>`, title, siteName, title, excerpt, postURL, siteName)
}

// ProductAnnouncementHTML returns the HTML body for a product broadcast.
func ProductAnnouncementHTML(title, description, imageURL, linkURL, siteName string) string {
	image := ""
	if imageURL != "" {
		image = fmt.Sprintf(`  <tr><td style="padding:0;"><img src="%s" alt="%s" width="520" style="display:block;width:100%%;height:auto;"></td></tr>
`, imageURL, title)
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
</head>
<body style="margin:0;padding:0;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Helvetica,Arial,sans-serif;background-color:#f4f5f7;">
<table width="100%%" cellpadding="0" cellspacing="0" style="background-color:#f4f5f7;padding:40px 0;">
<tr><td align="center">
<table width="520" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;overflow:hidden;box-shadow:0 2px 8px rgba(0,0,0,0.08);">
%s  <tr><td style="padding:32px 40px 16px;">
    <h1 style="margin:0;font-size:26px;color:#1a1a2e;">%s</h1>
  </td></tr>
  <tr><td style="padding:0 40px 24px;">
    <p style="margin:0;font-size:15px;color:#4a4a68;line-height:1.6;">%s</p>
  </td></tr>
  <tr><td style="padding:0 40px 32px;">
    <a href="%s" style="display:inline-block;background-color:#1a1a2e;color:#ffffff;text-decoration:none;font-size:15px;padding:12px 28px;border-radius:6px;">Shop now</a>
  </td></tr>
  <tr><td style="padding:16px 40px;background-color:#f9f9fc;border-top:1px solid #eeeef2;">
    <p style="margin:0;font-size:12px;color:#aaaabc;text-align:center;">
      You are receiving this because you subscribed to %s updates.
    </p>
  </td></tr>
</table>
</td></tr>
</table>
</body>
</html>`, title, image, title, description, linkURL, siteName)
}

// InquiryNotificationHTML returns the HTML body for the owner
// notification sent when a visitor submits the contact form.
func InquiryNotificationHTML(name, email, subject, message string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<body style="margin:0;padding:24px;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Helvetica,Arial,sans-serif;color:#1a1a2e;">
<h2 style="margin:0 0 16px;font-size:20px;">New inquiry: %s</h2>
<p style="margin:0 0 4px;font-size:14px;color:#4a4a68;"><strong>From:</strong> %s &lt;%s&gt;</p>
<div style="margin-top:16px;padding:16px;background-color:#f4f5f7;border-radius:6px;font-size:14px;line-height:1.6;white-space:pre-wrap;">%s</div>
</body>
</html>`, subject, name, email, message)
}
