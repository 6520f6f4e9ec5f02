package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"fieldops/internal/database"
	"fieldops/internal/domain"
	"fieldops/internal/modules/media"
	jwtsvc "fieldops/internal/pkg/jwt"
	"fieldops/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "fieldops.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}
	if err := db.AutoMigrate(&media.Photo{}); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (children before parents)
	log.Println("Cleaning old data...")
	for _, table := range []string{
		"availability_reports", "damage_reports", "warehouse_counts",
		"shelf_share_reports", "competitor_activities", "promoter_reports",
		"photos", "user_preferences", "notifications", "presence_records",
		"visit_requests", "visit_snapshots", "markets", "users", "clients",
	} {
		db.Exec("DELETE FROM " + table)
	}

	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	clientRepo := repository.NewClientRepository(db)
	userRepo := repository.NewUserRepository(db)
	marketRepo := repository.NewMarketRepository(db)
	visitRepo := repository.NewVisitRepository(db)
	requestRepo := repository.NewVisitRequestRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	presenceRepo := repository.NewPresenceRepository(db)

	// ================== TENANT ==================
	tenant := &domain.Client{Code: "acme", Name: "Acme Retail", Active: true}
	if err := clientRepo.UpsertByCode(ctx, tenant); err != nil {
		log.Fatal("tenant seed failed:", err)
	}
	log.Println("Tenant created:", tenant.Code)

	// ================== USERS ==================
	log.Println("Creating users...")

	mkUser := func(username, name, email string, role domain.UserRole, leaderID *int64) *domain.User {
		hash, _ := bcrypt.GenerateFromPassword([]byte(username+"123"), bcrypt.DefaultCost)
		u := &domain.User{
			ClientID:     tenant.ID,
			Username:     username,
			Name:         name,
			Email:        email,
			PasswordHash: string(hash),
			Role:         role,
			TeamLeaderID: leaderID,
			Active:       true,
		}
		if err := userRepo.Create(ctx, u); err != nil {
			log.Fatal("user seed failed:", err)
		}
		return u
	}

	superAdmin := mkUser("root", "Head Office", "root@acme.test", domain.RoleSuperAdmin, nil)
	admin := mkUser("admin", "Operations Admin", "ops@acme.test", domain.RoleAdmin, nil)
	leader := mkUser("leader", "Team Leader Omar", "omar@acme.test", domain.RoleTeamLeader, nil)
	mch1 := mkUser("aisha", "Aisha Merchandiser", "aisha@acme.test", domain.RoleMCH, &leader.ID)
	mch2 := mkUser("yusuf", "Yusuf Merchandiser", "yusuf@acme.test", domain.RoleMCH, &leader.ID)
	promoter := mkUser("lina", "Lina Promoter", "lina@acme.test", domain.RolePromoter, &leader.ID)

	fieldUsers := []*domain.User{mch1, mch2, promoter}
	log.Printf("Users created: %d (passwords are <username>123)", 6)

	// Ready-to-use bearer tokens so the seeded data is reachable without a
	// login flow.
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "change-me-jwt-secret"
	}
	j := jwtsvc.New(secret, 24*time.Hour)
	log.Println("Demo bearer tokens (24h):")
	for _, u := range []*domain.User{superAdmin, admin, leader, mch1, mch2, promoter} {
		token, err := j.GenerateToken(u.ID, tenant.ID, string(u.Role))
		if err != nil {
			log.Fatal("token seed failed:", err)
		}
		log.Printf("  %-8s %s", u.Username, token)
	}

	// ================== MARKETS ==================
	log.Println("Creating markets...")

	marketSpecs := [][4]string{
		{"Riyadh", "Riyadh", "Carrefour", "Granada Mall"},
		{"Riyadh", "Riyadh", "Carrefour", "Kingdom Tower"},
		{"Riyadh", "Riyadh", "Lulu", "Olaya"},
		{"Makkah", "Jeddah", "Danube", "Corniche"},
		{"Makkah", "Jeddah", "Panda", "Al Salamah"},
		{"Eastern", "Dammam", "Othaim", "King Fahd Rd"},
	}
	markets := make([]*domain.Market, 0, len(marketSpecs))
	for _, spec := range marketSpecs {
		m := &domain.Market{
			ClientID: tenant.ID,
			Region:   spec[0],
			City:     spec[1],
			Store:    spec[2],
			Branch:   spec[3],
		}
		if err := marketRepo.Create(ctx, m); err != nil {
			log.Fatal("market seed failed:", err)
		}
		markets = append(markets, m)
	}

	// ================== VISIT SNAPSHOTS ==================
	log.Println("Creating a month of visit snapshots...")

	endReasons := []string{"Store closed", "No access to shelf", "Security refused entry"}
	today := time.Now().Truncate(24 * time.Hour)
	visitCount := 0

	for dayOffset := 30; dayOffset >= 1; dayOffset-- {
		day := today.AddDate(0, 0, -dayOffset)
		date := day.Format("2006-01-02")

		for i, u := range fieldUsers {
			market := markets[(dayOffset+i)%len(markets)]
			start := day.Add(time.Duration(9+i) * time.Hour)

			v := &domain.VisitSnapshot{
				ClientID:  tenant.ID,
				UserID:    u.ID,
				MarketID:  &market.ID,
				VisitDate: date,
				StartedAt: &start,
				JPState:   domain.InJP,
				Region:    market.Region,
				City:      market.City,
				Store:     market.Store,
				Branch:    market.Branch,
			}

			switch rng.Intn(10) {
			case 0: // abandoned with a reason
				v.EndReason = endReasons[rng.Intn(len(endReasons))]
				v.EndReasonAr = "سبب الإنهاء"
			case 1: // still pending, only a start time
			default:
				finish := start.Add(time.Duration(45+rng.Intn(90)) * time.Minute)
				v.FinishedAt = &finish
			}

			if err := visitRepo.Create(ctx, v); err != nil {
				log.Fatal("visit seed failed:", err)
			}
			visitCount++

			// Every few days the team leader re-records the same market-day,
			// producing the duplicate rows the listing has to collapse.
			if dayOffset%4 == 0 && i == 0 {
				lstart := start.Add(2 * time.Hour)
				lfinish := lstart.Add(30 * time.Minute)
				dup := &domain.VisitSnapshot{
					ClientID:   tenant.ID,
					UserID:     leader.ID,
					MarketID:   &market.ID,
					VisitDate:  date,
					StartedAt:  &lstart,
					FinishedAt: &lfinish,
					JPState:    domain.OutOfJP,
					Region:     market.Region,
					City:       market.City,
					Store:      market.Store,
					Branch:     market.Branch,
				}
				if err := visitRepo.Create(ctx, dup); err != nil {
					log.Fatal("visit seed failed:", err)
				}
				visitCount++
			}

			// Presence rows, occasionally duplicated with a smaller reading
			// to exercise the max-per-day rule.
			secs := int64(6*3600 + rng.Intn(4*3600))
			_ = presenceRepo.Create(ctx, &domain.PresenceRecord{
				ClientID: tenant.ID, UserID: u.ID, Day: date, PresenceSeconds: secs,
			})
			if dayOffset%7 == 0 {
				_ = presenceRepo.Create(ctx, &domain.PresenceRecord{
					ClientID: tenant.ID, UserID: u.ID, Day: date, PresenceSeconds: secs / 2,
				})
			}
		}
	}
	log.Printf("Visit snapshots created: %d", visitCount)

	// ================== VISIT REQUESTS ==================
	log.Println("Creating visit requests in every state...")

	mkRequest := func(requester *domain.User, market *domain.Market, daysAhead int, status domain.RequestStatus) {
		vr := &domain.VisitRequest{
			ClientID:    tenant.ID,
			RequesterID: requester.ID,
			MarketID:    market.ID,
			VisitDate:   today.AddDate(0, 0, daysAhead).Format("2006-01-02"),
			Reason:      "Planogram reset",
			DailyStatus: domain.RequestPending,
		}
		if err := requestRepo.Create(ctx, vr); err != nil {
			log.Fatal("request seed failed:", err)
		}
		if status != domain.RequestPending {
			now := time.Now()
			vr.DailyStatus = status
			if status != domain.RequestCancelled {
				vr.ApproverID = &admin.ID
				vr.DecidedAt = &now
				vr.DecisionNote = "Seeded decision"
			}
			if err := requestRepo.Update(ctx, vr); err != nil {
				log.Fatal("request seed failed:", err)
			}
		}
	}

	mkRequest(mch1, markets[0], 1, domain.RequestPending)
	mkRequest(mch1, markets[1], 2, domain.RequestApproved)
	mkRequest(mch2, markets[2], 1, domain.RequestRejected)
	mkRequest(promoter, markets[3], 3, domain.RequestCancelled)

	// ================== NOTIFICATIONS ==================
	log.Println("Creating notifications in every target mode...")

	notifs := []*domain.Notification{
		{
			ClientID: tenant.ID, SenderID: superAdmin.ID,
			Title: "Month-end audit", Message: "Submit all pending reports by Friday.",
			TargetMode: domain.TargetAll,
		},
		{
			ClientID: tenant.ID, SenderID: admin.ID,
			Title: "Team leader sync", Message: "Weekly review call moved to 10:00.",
			TargetMode: domain.TargetRoles, TargetRoles: []string{string(domain.RoleTeamLeader)},
		},
		{
			ClientID: tenant.ID, SenderID: leader.ID,
			Title: "Shelf photos", Message: "Re-shoot the Carrefour Granada end cap.",
			TargetMode: domain.TargetUsers, TargetUsers: []int64{mch1.ID},
		},
	}
	for _, n := range notifs {
		if err := notifRepo.Create(ctx, n); err != nil {
			log.Fatal("notification seed failed:", err)
		}
	}

	// ================== STEP REPORTS ==================
	log.Println("Creating step report rows...")

	visits, err := visitRepo.ListAll(ctx, repository.VisitFilter{ClientID: tenant.ID})
	if err != nil {
		log.Fatal("visit lookup failed:", err)
	}

	skus := []string{"CHO-090", "CHO-200", "BIS-055", "JUI-330"}
	reportRows := 0
	for _, v := range visits {
		if v.Status() != domain.VisitFinished || rng.Intn(3) != 0 {
			continue
		}
		sku := skus[rng.Intn(len(skus))]
		rows := map[string]map[string]any{
			"availability_reports": {
				"sku": sku, "available": rng.Intn(5) > 0, "quantity": rng.Intn(40), "notes": "",
			},
			"damage_reports": {
				"sku": sku, "quantity": 1 + rng.Intn(4), "damage_kind": "crushed packaging", "photo_url": "",
			},
			"warehouse_counts": {
				"sku": sku, "counted": 80 + rng.Intn(40), "expected": 100,
			},
			"shelf_share_reports": {
				"category": "Chocolate", "own_facings": 6 + rng.Intn(6), "total_facings": 24,
			},
			"competitor_activities": {
				"competitor": "Galaxy", "activity": "2-for-1 promo on end cap", "photo_url": "",
			},
			"promoter_reports": {
				"sku": sku, "sold_units": rng.Intn(30), "sampling": rng.Intn(60), "notes": "",
			},
		}
		for table, row := range rows {
			row["client_id"] = tenant.ID
			row["visit_id"] = v.ID
			row["created_at"] = time.Now()
			if err := db.Table(table).Create(row).Error; err != nil {
				log.Fatal("report seed failed:", err)
			}
			reportRows++
		}
	}
	log.Printf("Step report rows created: %d", reportRows)

	fmt.Println("Seed complete.")
}
