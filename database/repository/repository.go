package repository

import (
	"pizzeria/database"
	bookingRepo "pizzeria/database/repository/booking"
	chatRepo "pizzeria/database/repository/chat"
	contactRepo "pizzeria/database/repository/contact"
	eventRepo "pizzeria/database/repository/event"
	galleryRepo "pizzeria/database/repository/gallery"
	inventoryRepo "pizzeria/database/repository/inventory"
	notificationRepo "pizzeria/database/repository/notification"
	reviewRepo "pizzeria/database/repository/review"
)

// Re-export the repository interfaces.
type (
	BookingRepository      = bookingRepo.BookingRepository
	EventRepository        = eventRepo.EventRepository
	GalleryRepository      = galleryRepo.GalleryRepository
	ReviewRepository       = reviewRepo.ReviewRepository
	InventoryRepository    = inventoryRepo.InventoryRepository
	NotificationRepository = notificationRepo.NotificationRepository
	ChatRepository         = chatRepo.ChatRepository
	ContactRepository      = contactRepo.ContactRepository
)

// Repositories bundles every collection repository built over one store.
type Repositories struct {
	Bookings      BookingRepository
	Events        EventRepository
	Gallery       GalleryRepository
	Reviews       ReviewRepository
	Inventory     InventoryRepository
	Notifications NotificationRepository
	Chat          ChatRepository
	Contacts      ContactRepository
}

func New(store database.Store) *Repositories {
	return &Repositories{
		Bookings:      bookingRepo.NewBookingRepo(store),
		Events:        eventRepo.NewEventRepo(store),
		Gallery:       galleryRepo.NewGalleryRepo(store),
		Reviews:       reviewRepo.NewReviewRepo(store),
		Inventory:     inventoryRepo.NewInventoryRepo(store),
		Notifications: notificationRepo.NewNotificationRepo(store),
		Chat:          chatRepo.NewChatRepo(store),
		Contacts:      contactRepo.NewContactRepo(store),
	}
}
