package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"pizzeria/models"
	"pizzeria/utils"
)

// ServiceName is the customer-facing name of a service type.
func ServiceName(t models.ServiceType) string {
	if t == models.ServiceWorkshop {
		return "Pizzeros en Acción"
	}
	return "Pizza Party"
}

// displayDate renders YYYY-MM-DD as DD/MM/YYYY and leaves anything else untouched.
func displayDate(s string) string {
	d, err := time.Parse(utils.DateLayout, s)
	if err != nil {
		return s
	}
	return d.Format("02/01/2006")
}

func bookingDate(b *models.Booking) string {
	if b.ConfirmedDate != "" {
		return displayDate(b.ConfirmedDate)
	}
	return displayDate(b.EventDate)
}

func bookingTime(b *models.Booking) string {
	if b.ConfirmedTime != "" {
		return b.ConfirmedTime
	}
	return b.EventTime
}

func bookingAckMessage(b *models.Booking) string {
	return fmt.Sprintf(`🍕 *Pablo's Pizza*

¡Hola %s!

Recibimos tu solicitud de *%s* para el %s.
👥 Participantes: %d
💰 Precio estimado: %s CLP

Te contactaremos pronto para confirmar los detalles. ¡Gracias por elegirnos!`,
		b.ClientName, ServiceName(b.ServiceType), displayDate(b.EventDate), b.Participants,
		utils.FormatMoney(b.EstimatedPrice))
}

func newBookingAdminMessage(b *models.Booking) string {
	return fmt.Sprintf(`🆕 *Nuevo agendamiento*

👤 Cliente: %s
📞 Teléfono: %s
✉️ Email: %s
🍕 Servicio: %s
📅 Fecha: %s %s
👥 Participantes: %d
📍 Ubicación: %s
💰 Estimado: %s CLP`,
		b.ClientName, b.ClientPhone, b.ClientEmail, ServiceName(b.ServiceType),
		displayDate(b.EventDate), b.EventTime, b.Participants, b.Location,
		utils.FormatMoney(b.EstimatedPrice))
}

func confirmationMessage(b *models.Booking) string {
	return fmt.Sprintf(`🍕 *Pablo's Pizza*

¡Hola %s!

✅ *Tu evento ha sido CONFIRMADO*

📋 *Detalles:*
🍕 Servicio: %s
📅 Fecha: %s
⏰ Hora: %s
👥 Participantes: %d
📍 Ubicación: %s
💰 Precio: %s CLP

🔥 *¿Qué puedes esperar?*
✅ Llegamos puntualmente
✅ Todos los materiales incluidos
✅ Experiencia divertida y educativa
✅ Pizzas deliciosas hechas por ustedes

¿Tienes alguna pregunta? ¡Responde a este mensaje!`,
		b.ClientName, ServiceName(b.ServiceType), bookingDate(b), bookingTime(b),
		b.Participants, b.Location, utils.FormatMoney(quotedPrice(b)))
}

func partnerMessage(b *models.Booking) string {
	return fmt.Sprintf(`📌 *Evento confirmado*

🍕 %s para %d personas
📅 %s %s
📍 %s
👤 Cliente: %s (%s)`,
		ServiceName(b.ServiceType), b.Participants, bookingDate(b), bookingTime(b),
		b.Location, b.ClientName, b.ClientPhone)
}

func reminderMessage(b *models.Booking) string {
	return fmt.Sprintf(`🍕 *Pablo's Pizza - Recordatorio*

¡Hola %s!

⏰ *Recordatorio: Tu evento es MAÑANA*

🍕 Servicio: %s
📅 Fecha: %s
⏰ Hora: %s
📍 Ubicación: %s

🔔 *Preparativos importantes:*
✅ Espacio limpio y despejado
✅ Mesa grande disponible
✅ Acceso a agua

¿Alguna duda de último minuto? ¡Escríbenos!`,
		b.ClientName, ServiceName(b.ServiceType), bookingDate(b), bookingTime(b), b.Location)
}

func reviewRequestMessage(clientName, reviewURL, eventID string) string {
	link := strings.TrimRight(reviewURL, "/") + "/" + eventID
	return fmt.Sprintf(`🌟 ¡Gracias por elegir Pablo's Pizza!

Hola %s,

¡Esperamos que hayas disfrutado tu experiencia con nosotros!
¿Te gustaría compartir tu opinión? Tu feedback es muy importante.

👉 Deja tu reseña aquí: %s

¡Hasta la próxima! 🍕`, clientName, link)
}

func lowStockMessage(item *models.InventoryItem) string {
	return fmt.Sprintf(`⚠️ *ALERTA DE INVENTARIO*

El siguiente producto está por agotarse:

📦 Producto: %s
📊 Stock actual: %d %s
📊 Stock mínimo: %d %s

¡Es hora de hacer pedido! 📞`,
		item.Name, item.CurrentStock, item.Unit, item.MinStock, item.Unit)
}

const testMessageBody = `🧪 Mensaje de prueba - Pablo's Pizza

Si recibes este mensaje, las notificaciones por WhatsApp están funcionando correctamente. 🍕`

type confirmationView struct {
	ClientName   string
	Service      string
	Date         string
	Time         string
	Participants int
	Location     string
	Price        string
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html lang="es">
<head><meta charset="UTF-8"><title>Evento Confirmado - Pablo's Pizza</title></head>
<body style="font-family:Arial,sans-serif;background:#f8f9fa;color:#2c2c2c;margin:0;padding:0">
<div style="max-width:600px;margin:0 auto;background:#fff">
  <div style="background:#c62828;color:#fff;padding:32px;text-align:center">
    <h1 style="margin:0">¡Tu evento ha sido confirmado!</h1>
    <p style="margin:8px 0 0">✅ CONFIRMADO</p>
  </div>
  <div style="padding:32px">
    <p>¡Hola {{.ClientName}}!</p>
    <p>Tu evento ha sido <strong>confirmado oficialmente</strong> y estamos emocionados de ser parte de tu celebración.</p>
    <table style="width:100%;border-collapse:collapse">
      <tr><td>🍕 Servicio</td><td><strong>{{.Service}}</strong></td></tr>
      <tr><td>📅 Fecha</td><td>{{.Date}}</td></tr>
      <tr><td>⏰ Hora</td><td>{{.Time}}</td></tr>
      <tr><td>👥 Participantes</td><td>{{.Participants}} personas</td></tr>
      <tr><td>📍 Ubicación</td><td>{{.Location}}</td></tr>
      <tr><td>💰 Precio</td><td><strong>{{.Price}} CLP</strong></td></tr>
    </table>
    <p>Adjuntamos una invitación de calendario con los detalles del evento.</p>
    <p>¿Tienes alguna pregunta? Escríbenos a pablospizza.cl@gmail.com</p>
  </div>
  <div style="background:#2c2c2c;color:#fff;padding:16px;text-align:center;font-size:12px">
    Pablo's Pizza. Este es un email automático de confirmación.
  </div>
</div>
</body>
</html>`))

const confirmationSubject = "✅ ¡Tu evento con Pablo's Pizza ha sido confirmado!"

func confirmationEmail(b *models.Booking) (string, string, error) {
	view := confirmationView{
		ClientName:   b.ClientName,
		Service:      ServiceName(b.ServiceType),
		Date:         bookingDate(b),
		Time:         bookingTime(b),
		Participants: b.Participants,
		Location:     b.Location,
		Price:        utils.FormatMoney(quotedPrice(b)),
	}
	var html bytes.Buffer
	if err := confirmationTmpl.Execute(&html, view); err != nil {
		return "", "", err
	}
	text := fmt.Sprintf("Hola %s, tu %s del %s a las %s para %d personas en %s está confirmado. Precio: %s CLP.",
		view.ClientName, view.Service, view.Date, view.Time, view.Participants, view.Location, view.Price)
	return html.String(), text, nil
}

var contactTmpl = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html lang="es"><head><meta charset="UTF-8"></head>
<body style="font-family:Arial,sans-serif">
<h2>Nuevo mensaje de contacto</h2>
<p><strong>Nombre:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
{{if .Phone}}<p><strong>Teléfono:</strong> {{.Phone}}</p>{{end}}
<p><strong>Mensaje:</strong></p>
<p style="white-space:pre-wrap">{{.Message}}</p>
</body></html>`))

func contactEmail(c *models.Contact) (string, string, error) {
	var html bytes.Buffer
	if err := contactTmpl.Execute(&html, c); err != nil {
		return "", "", err
	}
	return "📬 Nuevo contacto: " + c.Name, html.String(), nil
}
