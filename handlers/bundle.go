package handlers

// HandlerBundle groups every endpoint handler so routes can be registered in one place.
type HandlerBundle struct {
	Bookings      *BookingHandler
	Events        *EventHandler
	Gallery       *GalleryHandler
	Reviews       *ReviewHandler
	Inventory     *InventoryHandler
	Reports       *ReportHandler
	Notifications *NotificationHandler
	Chat          *ChatHandler
	Contacts      *ContactHandler
}
