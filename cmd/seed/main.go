package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"conectasonda/internal/config"
	"conectasonda/internal/database"
	"conectasonda/internal/domain"
	"conectasonda/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Seeds the demo fleet: the Santiago metro turnstiles and payment terminals
// the dashboard was built around, plus two operator accounts.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM predictions")
	db.Exec("DELETE FROM maintenance_requests")
	db.Exec("DELETE FROM failure_records")
	db.Exec("DELETE FROM equipment")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	equipment := repository.NewEquipmentRepository(db)
	failures := repository.NewFailureRepository(db)

	log.Println("Creating users...")
	for _, u := range []struct {
		email, password, name string
		role                  domain.UserRole
	}{
		{"supervisor@conectasonda.cl", "supervisor123", "Turno Supervisor", domain.RoleSupervisor},
		{"operator@conectasonda.cl", "operator123", "Field Operator", domain.RoleOperator},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal(err)
		}
		user := domain.User{
			Email:        u.email,
			PasswordHash: string(hash),
			Role:         u.role,
			Name:         u.name,
		}
		if err := users.Create(ctx, &user); err != nil {
			log.Fatal("seed user:", err)
		}
	}

	log.Println("Creating equipment...")
	date := func(s string) *time.Time {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			log.Fatal(err)
		}
		return &t
	}

	fleet := []domain.Equipment{
		{Name: "Torniquete T-001", Type: domain.TypeTurnstile, Location: "Estación Central - Acceso Norte", Status: domain.StatusOperational, LastMaintenance: date("2024-11-15"), LastFailure: date("2024-11-20"), FailureCount: 3, Uptime: 0.985},
		{Name: "Torniquete T-002", Type: domain.TypeTurnstile, Location: "Estación Central - Acceso Sur", Status: domain.StatusOperational, LastMaintenance: date("2024-11-20"), LastFailure: date("2024-12-01"), FailureCount: 1, Uptime: 0.992},
		{Name: "Transbank TB-001", Type: domain.TypePaymentTerminal, Location: "Estación Central - Hall Principal", Status: domain.StatusFailed, LastMaintenance: date("2024-10-30"), LastFailure: date("2024-12-04"), FailureCount: 5, Uptime: 0.941},
		{Name: "Torniquete T-003", Type: domain.TypeTurnstile, Location: "Estación Los Héroes - Acceso Este", Status: domain.StatusOperational, LastMaintenance: date("2024-12-04"), LastFailure: date("2024-11-15"), FailureCount: 2, Uptime: 0.978},
		{Name: "Transbank TB-002", Type: domain.TypePaymentTerminal, Location: "Estación Los Héroes - Boletería", Status: domain.StatusOperational, LastMaintenance: date("2024-11-25"), LastFailure: date("2024-10-28"), FailureCount: 2, Uptime: 0.965},
		{Name: "Torniquete T-004", Type: domain.TypeTurnstile, Location: "Estación Baquedano - Acceso Principal", Status: domain.StatusOperational, LastMaintenance: date("2024-11-28"), LastFailure: date("2024-11-30"), FailureCount: 1, Uptime: 0.990},
		{Name: "Transbank TB-003", Type: domain.TypePaymentTerminal, Location: "Estación Baquedano - Autoservicio", Status: domain.StatusOperational, LastMaintenance: date("2024-11-10"), LastFailure: date("2024-11-10"), FailureCount: 4, Uptime: 0.953},
		{Name: "Torniquete T-005", Type: domain.TypeTurnstile, Location: "Estación Tobalaba - Acceso Oriente", Status: domain.StatusFailed, LastMaintenance: date("2024-10-15"), LastFailure: date("2024-12-04"), FailureCount: 6, Uptime: 0.921},
	}
	for i := range fleet {
		if err := equipment.Create(ctx, &fleet[i]); err != nil {
			log.Fatal("seed equipment:", err)
		}
	}

	log.Println("Creating failure history...")
	historySeed := []struct {
		equipmentIdx int
		date         string
		failureType  string
		resolved     bool
	}{
		{2, "2024-12-04", "card reader", false},
		{7, "2024-12-04", "drive motor", false},
		{1, "2024-12-03", "passage sensor", true},
		{6, "2024-12-02", "touchscreen", true},
		{0, "2024-12-01", "mechanical arm", true},
		{5, "2024-11-30", "card reader", true},
	}
	for _, h := range historySeed {
		rec := domain.FailureRecord{
			EquipmentID: fleet[h.equipmentIdx].ID,
			Date:        *date(h.date),
			FailureType: h.failureType,
			Resolved:    h.resolved,
		}
		if err := failures.Create(ctx, &rec); err != nil {
			log.Fatal("seed failure:", err)
		}
	}

	log.Println("Seed complete.")
}
