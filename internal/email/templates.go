package email

import "fmt"

// Brand palette of the DBFPN web frontend; emails are rendered to match it.
const (
	brandColor      = "#FFEB3B"
	backgroundColor = "#0a0a0a"
	textColor       = "#ffffff"
)

const (
	OTPSubject       = "Kode Verifikasi DBFPN"
	OTPResendSubject = "Kode Verifikasi DBFPN (Kirim Ulang)"
	MagicLinkSubject = "Sign in to DBFPN"
)

// OTPText is the plain-text body of a verification-code email.
func OTPText(otp string) string {
	return fmt.Sprintf(
		"Kode verifikasi DBFPN Anda: %s\n\nKode ini berlaku selama 10 menit.\nJika Anda tidak meminta kode ini, abaikan email ini.",
		otp,
	)
}

// OTPHTML is the HTML body of a verification-code email.
func OTPHTML(otp string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; background-color: %[2]s;">
    <table width="100%%" cellpadding="0" cellspacing="0" style="background-color: %[2]s; padding: 40px 20px;">
        <tr>
            <td align="center">
                <table width="100%%" cellpadding="0" cellspacing="0" style="max-width: 600px; background-color: #1a1a1a; border-radius: 12px; overflow: hidden; border: 1px solid #333;">
                    <tr>
                        <td style="padding: 40px; text-align: center;">
                            <h1 style="margin: 0 0 24px 0; color: %[3]s; font-size: 32px; font-weight: bold;">DBFPN</h1>
                            <h2 style="margin: 0 0 16px 0; color: %[4]s; font-size: 24px; font-weight: 600;">Kode Verifikasi Anda</h2>
                            <p style="margin: 0 0 32px 0; color: #888; font-size: 14px;">
                                Masukkan kode berikut untuk menyelesaikan pendaftaran:
                            </p>
                            <div style="background-color: #252525; border-radius: 8px; padding: 24px; margin: 0 0 32px 0;">
                                <span style="font-size: 32px; font-weight: bold; color: %[3]s; letter-spacing: 8px;">%[1]s</span>
                            </div>
                            <p style="margin: 0; color: #888; font-size: 14px; line-height: 1.6;">
                                Kode ini berlaku selama 10 menit.<br>
                                Jika Anda tidak meminta kode ini, abaikan email ini.
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>`, otp, backgroundColor, brandColor, textColor)
}

// MagicLinkText is the plain-text body of a sign-in link email.
func MagicLinkText(link string) string {
	return fmt.Sprintf("Sign in to DBFPN\n\n%s\n\nIf you did not request this email you can safely ignore it.", link)
}

// MagicLinkHTML is the HTML body of a sign-in link email.
func MagicLinkHTML(link string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; background-color: %[2]s;">
    <table width="100%%" cellpadding="0" cellspacing="0" style="background-color: %[2]s; padding: 40px 20px;">
        <tr>
            <td align="center">
                <table width="100%%" cellpadding="0" cellspacing="0" style="max-width: 600px; background-color: #1a1a1a; border-radius: 12px; overflow: hidden; border: 1px solid #333;">
                    <tr>
                        <td style="padding: 40px; text-align: center;">
                            <h1 style="margin: 0 0 24px 0; color: %[3]s; font-size: 32px; font-weight: bold;">DBFPN</h1>
                            <h2 style="margin: 0 0 32px 0; color: %[4]s; font-size: 24px; font-weight: 600;">Sign in to DBFPN</h2>
                            <a href="%[1]s" target="_blank" style="display: inline-block; background-color: %[3]s; color: #000000; text-decoration: none; font-weight: bold; padding: 16px 48px; border-radius: 8px; font-size: 16px;">Sign in</a>
                            <p style="margin: 32px 0 0 0; color: #888; font-size: 14px; line-height: 1.6;">
                                If you did not request this email you can safely ignore it.
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>`, link, backgroundColor, brandColor, textColor)
}
