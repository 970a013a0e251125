package bookingtest

import "github.com/BruksfildServices01/salon-booking/internal/models"

const (
	SalonID      uint = 7
	OtherSalonID uint = 8
	UserID       uint = 10

	ServiceCut      uint = 1
	ServiceBlowDry  uint = 2
	ServiceManicure uint = 3 // belongs to OtherSalonID
	ServiceRetired  uint = 4 // inactive
)

// Seeded returns a store with two salons, a user and a few services.
func Seeded() *Store {
	s := NewStore()

	s.AddSalon(models.Salon{ID: SalonID, Name: "Studio Bela", Slug: "studio-bela", Active: true})
	s.AddSalon(models.Salon{ID: OtherSalonID, Name: "Unhas & Cia", Slug: "unhas-cia", Active: true})

	s.AddUser(models.User{ID: UserID, Name: "Ana Souza", Email: "ana@example.com", Role: "user"})

	s.AddService(models.Service{ID: ServiceCut, SalonID: SalonID, Name: "Corte", DurationMin: 60, Price: 80, Active: true})
	s.AddService(models.Service{ID: ServiceBlowDry, SalonID: SalonID, Name: "Escova", DurationMin: 30, Price: 50, Active: true})
	s.AddService(models.Service{ID: ServiceManicure, SalonID: OtherSalonID, Name: "Manicure", DurationMin: 45, Price: 40, Active: true})
	s.AddService(models.Service{ID: ServiceRetired, SalonID: SalonID, Name: "Progressiva", DurationMin: 120, Price: 300, Active: false})

	s.AddPackage(models.Package{ID: 1, SalonID: SalonID, Name: "Dia da Noiva", Services: "1,2", Price: 120, Active: true})
	s.AddProduct(models.Product{ID: 1, SalonID: SalonID, Name: "Shampoo", Price: 45.9, Stock: 12, Active: true})

	return s
}
