package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"eventplanner/internal/bookings"
	"eventplanner/internal/catalog"
	"eventplanner/internal/policy"
	"eventplanner/internal/shared/config"
	"eventplanner/internal/shared/database"
	"eventplanner/internal/users"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db       *database.DB
	password string
}

func main() {
	clean := pflag.Bool("clean", true, "truncate seeded tables before inserting")
	password := pflag.StringP("password", "p", "qwerty", "password for every seeded account")
	pflag.Parse()

	fmt.Println("🌱 Starting Event Planner Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db, password: *password}

	if *clean {
		fmt.Println("\n🧹 Cleaning database...")
		if err := seeder.CleanDatabase(); err != nil {
			log.Fatalf("Failed to clean database: %v", err)
		}
		fmt.Println("✅ Database cleaned successfully")
	}

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(context.Background()); err != nil {
		log.Printf("Failed to seed database: %v", err)
		os.Exit(1)
	}

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"bookings",
		"vendor_services",
		"vendor_profiles",
		"events",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds users, the catalog and a few bookings
func (s *Seeder) SeedAll(ctx context.Context) error {
	userIDs, err := s.SeedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	eventIDs, err := s.SeedEvents(userIDs)
	if err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}

	vendorIDs, serviceIDs, err := s.SeedVendors(userIDs)
	if err != nil {
		return fmt.Errorf("failed to seed vendors: %w", err)
	}

	if err := s.SeedBookings(ctx, userIDs, eventIDs, vendorIDs, serviceIDs); err != nil {
		return fmt.Errorf("failed to seed bookings: %w", err)
	}

	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis cache: %v", err)
		}
	}

	return nil
}

// SeedUsers creates one account per role plus a second customer
func (s *Seeder) SeedUsers() (map[string]uuid.UUID, error) {
	fmt.Println("  👤 Seeding users...")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		key       string
		firstName string
		lastName  string
		email     string
		role      users.Role
	}{
		{"admin", "Admin", "User", "admin@eventplanner.local", users.RoleAdmin},
		{"manager", "Maya", "Patel", "manager@eventplanner.local", users.RoleManager},
		{"customer", "Riya", "Mehta", "customer@eventplanner.local", users.RoleCustomer},
		{"customer2", "Arjun", "Rao", "customer2@eventplanner.local", users.RoleCustomer},
		{"caterer", "Kiran", "Desai", "caterer@eventplanner.local", users.RoleVendor},
		{"photographer", "Sam", "Iyer", "photo@eventplanner.local", users.RoleVendor},
	}

	userIDs := make(map[string]uuid.UUID)
	for _, userData := range usersData {
		user := users.User{
			ID:        uuid.New(),
			FirstName: userData.firstName,
			LastName:  userData.lastName,
			Email:     userData.email,
			Password:  string(hashedPassword),
			Role:      userData.role,
			IsActive:  true,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		userIDs[userData.key] = user.ID
		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}

	return userIDs, nil
}

// SeedEvents creates customer events, one of them with an assigned manager
func (s *Seeder) SeedEvents(userIDs map[string]uuid.UUID) (map[string]uuid.UUID, error) {
	fmt.Println("  🎉 Seeding events...")

	managerID := userIDs["manager"]
	eventsData := []struct {
		key      string
		customer string
		manager  *uuid.UUID
		title    string
		kind     string
		location string
		guests   int
		inDays   int
	}{
		{"wedding", "customer", &managerID, "Riya & Dev Wedding", "wedding", "Udaipur Palace Grounds", 250, 45},
		{"birthday", "customer", nil, "Riya's 30th Birthday", "birthday", "Bandra Rooftop", 40, 20},
		{"conference", "customer2", nil, "Product Launch Conference", "corporate", "Bengaluru Convention Centre", 400, 60},
	}

	eventIDs := make(map[string]uuid.UUID)
	for _, e := range eventsData {
		guests := e.guests
		event := catalog.Event{
			ID:         uuid.New(),
			CustomerID: userIDs[e.customer],
			ManagerID:  e.manager,
			Title:      e.title,
			EventType:  e.kind,
			StartDate:  time.Now().AddDate(0, 0, e.inDays).Truncate(24 * time.Hour),
			Location:   e.location,
			GuestCount: &guests,
			Status:     catalog.EventStatusPlanning,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&event).Error; err != nil {
			return nil, fmt.Errorf("failed to create event %s: %w", e.title, err)
		}

		eventIDs[e.key] = event.ID
		fmt.Printf("    ✅ Created event: %s\n", event.Title)
	}

	return eventIDs, nil
}

// SeedVendors creates vendor profiles with a service for every price type
func (s *Seeder) SeedVendors(userIDs map[string]uuid.UUID) (map[string]uuid.UUID, map[string]uuid.UUID, error) {
	fmt.Println("  🏪 Seeding vendors and services...")

	vendorsData := []struct {
		key      string
		owner    string
		name     string
		kind     string
		location string
	}{
		{"caterer", "caterer", "Spice Route Catering", "catering", "Mumbai"},
		{"photographer", "photographer", "Golden Hour Studios", "photography", "Pune"},
	}

	vendorIDs := make(map[string]uuid.UUID)
	for _, v := range vendorsData {
		vendor := catalog.Vendor{
			ID:           uuid.New(),
			UserID:       userIDs[v.owner],
			BusinessName: v.name,
			VendorType:   v.kind,
			Location:     v.location,
			IsAvailable:  true,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if err := s.db.PostgreSQL.Create(&vendor).Error; err != nil {
			return nil, nil, fmt.Errorf("failed to create vendor %s: %w", v.name, err)
		}
		vendorIDs[v.key] = vendor.ID
		fmt.Printf("    ✅ Created vendor: %s\n", vendor.BusinessName)
	}

	intPtr := func(v int) *int { return &v }
	servicesData := []struct {
		key       string
		vendor    string
		name      string
		price     float64
		priceType catalog.PriceType
		capacity  *int
	}{
		{"buffet", "caterer", "Royal Buffet", 45.00, catalog.PriceTypePerPerson, intPtr(500)},
		{"plated", "caterer", "Plated Dinner", 60.00, catalog.PriceTypePerMeal, intPtr(200)},
		{"coverage", "photographer", "Event Coverage", 120.00, catalog.PriceTypePerHour, nil},
		{"album", "photographer", "Premium Album", 850.00, catalog.PriceTypePerEvent, nil},
	}

	serviceIDs := make(map[string]uuid.UUID)
	for _, sd := range servicesData {
		service := catalog.Service{
			ID:          uuid.New(),
			VendorID:    vendorIDs[sd.vendor],
			ServiceName: sd.name,
			BasePrice:   sd.price,
			PriceType:   sd.priceType,
			Capacity:    sd.capacity,
			IsAvailable: true,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		if err := s.db.PostgreSQL.Create(&service).Error; err != nil {
			return nil, nil, fmt.Errorf("failed to create service %s: %w", sd.name, err)
		}
		serviceIDs[sd.key] = service.ID
		fmt.Printf("    ✅ Created service: %s (%s)\n", service.ServiceName, service.PriceType)
	}

	return vendorIDs, serviceIDs, nil
}

// SeedBookings books through the engine so pricing and conflict rules apply
func (s *Seeder) SeedBookings(ctx context.Context, userIDs, eventIDs, vendorIDs, serviceIDs map[string]uuid.UUID) error {
	fmt.Println("  📅 Seeding bookings...")

	catalogRepo := catalog.NewRepository(s.db.PostgreSQL)
	engine := bookings.NewService(bookings.NewRepository(s.db.PostgreSQL), catalogRepo)

	strPtr := func(v string) *string { return &v }
	bookingDate := time.Now().AddDate(0, 0, 45).Format("2006-01-02")

	requests := []struct {
		customer string
		req      bookings.CreateBookingRequest
	}{
		{"customer", bookings.CreateBookingRequest{
			EventID:             eventIDs["wedding"].String(),
			VendorID:            vendorIDs["caterer"].String(),
			ServiceID:           serviceIDs["buffet"].String(),
			Quantity:            250,
			BookingDate:         bookingDate,
			SpecialRequirements: strPtr("Half the guests are vegetarian"),
		}},
		{"customer", bookings.CreateBookingRequest{
			EventID:     eventIDs["wedding"].String(),
			VendorID:    vendorIDs["photographer"].String(),
			ServiceID:   serviceIDs["coverage"].String(),
			Quantity:    1,
			BookingDate: bookingDate,
			StartTime:   strPtr("16:00"),
			EndTime:     strPtr("22:30"),
		}},
		{"customer2", bookings.CreateBookingRequest{
			EventID:     eventIDs["conference"].String(),
			VendorID:    vendorIDs["photographer"].String(),
			ServiceID:   serviceIDs["coverage"].String(),
			Quantity:    1,
			BookingDate: bookingDate,
			StartTime:   strPtr("09:00"),
			EndTime:     strPtr("13:00"),
		}},
	}

	for _, r := range requests {
		principal := policy.Principal{ID: userIDs[r.customer], Role: users.RoleCustomer}
		req := r.req
		booking, err := engine.CreateBooking(ctx, principal, &req)
		if err != nil {
			return err
		}
		fmt.Printf("    ✅ Created booking: %s total=%.2f\n", booking.ID, booking.TotalCost)
	}

	return nil
}
