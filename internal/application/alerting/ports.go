package alerting

// NotificationSender es el canal externo de entrega de notificaciones.
// Cualquier error de transporte o validación cuenta como fallo de entrega;
// el despachador no inspecciona la causa.
type NotificationSender interface {
	Send(to, subject, body string) error
}
