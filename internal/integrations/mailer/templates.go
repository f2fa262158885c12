package mailer

import (
	htmltemplate "html/template"
	"text/template"
)

type messageData struct {
	ShopName  string
	Name      string
	Service   string
	Date      string
	Time      string
	Duration  int
	Notes     string
	CancelURL string
	Year      int
}

var bookedText = template.Must(template.New("booked.txt").Parse(`Hallo {{.Name}},

Ihr Termin wurde bestätigt.
Service: {{.Service}}
Datum: {{.Date}}
Uhrzeit: {{.Time}}
Dauer: {{.Duration}} Min
{{if .Notes}}
Hinweise: {{.Notes}}
{{end}}
Termin absagen: {{.CancelURL}}

Bis bald im {{.ShopName}}!
`))

var cancelledText = template.Must(template.New("cancelled.txt").Parse(`Hallo {{.Name}},

Ihr Termin wurde erfolgreich abgesagt.
Service: {{.Service}}
Datum: {{.Date}}
Uhrzeit: {{.Time}}

Falls Sie einen neuen Termin wünschen, können Sie gerne einen neuen Termin buchen.

Mit freundlichen Grüßen
{{.ShopName}}
`))

// html/template экранирует все пользовательские поля при выводе
var bookedHTML = htmltemplate.Must(htmltemplate.New("booked.html").Parse(`<!DOCTYPE html>
<html lang="de">
<head><meta charset="UTF-8"><title>Terminbestätigung - {{.ShopName}}</title></head>
<body style="margin:0;padding:20px;background-color:#f8fafc;font-family:'Segoe UI',Tahoma,Geneva,Verdana,sans-serif">
  <div style="max-width:600px;margin:0 auto;background:#ffffff;border-radius:16px;overflow:hidden">
    <div style="background:#0f172a;padding:30px 20px;text-align:center">
      <h1 style="margin:0;font-size:20px;color:#ffffff">{{.ShopName}}</h1>
      <p style="margin:8px 0 0 0;font-size:11px;color:#cbd5e1">Terminbestätigung</p>
    </div>
    <div style="padding:24px">
      <p>Hallo {{.Name}},</p>
      <p>Ihr Termin wurde bestätigt.</p>
      <table style="width:100%;font-size:14px">
        <tr><td>Service</td><td><strong>{{.Service}}</strong></td></tr>
        <tr><td>Datum</td><td><strong>{{.Date}}</strong></td></tr>
        <tr><td>Uhrzeit</td><td><strong>{{.Time}}</strong></td></tr>
        <tr><td>Dauer</td><td><strong>{{.Duration}} Min</strong></td></tr>
      </table>
      {{if .Notes}}<p><em>Hinweise:</em> {{.Notes}}</p>{{end}}
      <p style="text-align:center;margin-top:24px">
        <a href="{{.CancelURL}}" style="background:#dc2626;color:#ffffff;padding:10px 18px;border-radius:8px;text-decoration:none">Termin absagen</a>
      </p>
    </div>
    <div style="padding:16px;text-align:center;font-size:11px;color:#64748b">
      Diese E-Mail wurde automatisch generiert &bull; {{.ShopName}} &bull; &copy; {{.Year}}
    </div>
  </div>
</body>
</html>
`))

var cancelledHTML = htmltemplate.Must(htmltemplate.New("cancelled.html").Parse(`<!DOCTYPE html>
<html lang="de">
<head><meta charset="UTF-8"><title>Termin abgesagt - {{.ShopName}}</title></head>
<body style="margin:0;padding:20px;background-color:#f8fafc;font-family:'Segoe UI',Tahoma,Geneva,Verdana,sans-serif">
  <div style="max-width:600px;margin:0 auto;background:#ffffff;border-radius:16px;overflow:hidden">
    <div style="background:#b91c1c;padding:30px 20px;text-align:center">
      <h1 style="margin:0;font-size:20px;color:#ffffff">{{.ShopName}}</h1>
      <p style="margin:8px 0 0 0;font-size:11px;color:#fecaca">Termin abgesagt</p>
    </div>
    <div style="padding:24px">
      <p>Hallo {{.Name}},</p>
      <p>Ihr Termin wurde erfolgreich abgesagt.</p>
      <table style="width:100%;font-size:14px">
        <tr><td>Service</td><td><strong>{{.Service}}</strong></td></tr>
        <tr><td>Datum</td><td><strong>{{.Date}}</strong></td></tr>
        <tr><td>Uhrzeit</td><td><strong>{{.Time}}</strong></td></tr>
      </table>
      <p>Falls Sie einen neuen Termin wünschen, können Sie gerne einen neuen Termin buchen.</p>
    </div>
    <div style="padding:16px;text-align:center;font-size:11px;color:#64748b">
      Diese E-Mail wurde automatisch generiert &bull; {{.ShopName}} &bull; &copy; {{.Year}}
    </div>
  </div>
</body>
</html>
`))
