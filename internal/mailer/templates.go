package mailer

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"

	"cert-scribe/certificate-portal/certificate-portal-backend/internal/participants"
)

type bodyData struct {
	Name   string
	Course string
	Date   string
	Year   int
}

var htmlBody = htmltemplate.Must(htmltemplate.New("html").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="UTF-8">
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
.header { background: #182d51; color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
.content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
.highlight { background: #fff; padding: 15px; border-left: 4px solid #182d51; margin: 20px 0; }
.footer { text-align: center; margin-top: 30px; padding-top: 20px; border-top: 2px solid #eee; color: #666; font-size: 12px; }
</style>
</head>
<body>
<div class="header">
<h1>&iexcl;Felicidades!</h1>
</div>
<div class="content">
<h2>Estimado/a {{.Name}},</h2>
<p>Has completado exitosamente el curso:</p>
<div class="highlight">
<strong>Curso:</strong> {{.Course}}<br>
<strong>Fecha de finalizaci&oacute;n:</strong> {{.Date}}
</div>
<p>Adjunto a este correo encontrar&aacute;s tu <strong>Certificado de Participaci&oacute;n</strong> en formato PDF.</p>
<p>&iexcl;Felicidades por tu logro!</p>
<div class="footer">
<p>Este es un correo autom&aacute;tico, por favor no responder.</p>
<p>&copy; {{.Year}} Todos los derechos reservados.</p>
</div>
</div>
</body>
</html>
`))

var textBody = texttemplate.Must(texttemplate.New("text").Parse(`¡Felicidades {{.Name}}!

Has completado exitosamente el curso: {{.Course}}
Fecha de finalización: {{.Date}}

Adjunto encontrarás tu Certificado de Participación en formato PDF.

--
Este es un correo automático, por favor no responder.
© {{.Year}}
`))

func renderBodies(p *participants.Participant) (html, text string, err error) {
	data := bodyData{
		Name:   p.Name,
		Course: p.Course,
		Date:   p.DateCompleted.Format("02/01/2006"),
		Year:   time.Now().Year(),
	}

	var htmlBuf, textBuf bytes.Buffer
	if err := htmlBody.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to render html body: %w", err)
	}
	if err := textBody.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to render text body: %w", err)
	}
	return htmlBuf.String(), textBuf.String(), nil
}
