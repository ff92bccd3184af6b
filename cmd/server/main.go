package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	"crownhold/internal/adapter/actors"
	httpadapter "crownhold/internal/adapter/http"
	metricsinmem "crownhold/internal/adapter/metrics/inmemory"
	"crownhold/internal/adapter/notify/ws"
	"crownhold/internal/adapter/publish"
	gormrepo "crownhold/internal/adapter/repo/gorm"
	memrepo "crownhold/internal/adapter/repo/memory"
	"crownhold/internal/app/chronicle"
	"crownhold/internal/app/court"
	"crownhold/internal/app/ports"
	"crownhold/internal/app/siege"
	"crownhold/internal/app/status"
	"crownhold/internal/app/succession"
	"crownhold/internal/app/throne"
	"crownhold/internal/config"
	"crownhold/internal/domain/combat"

	"github.com/cloudwego/hertz/pkg/app/server"
)

type repos struct {
	monarchs  ports.MonarchRepository
	history   ports.HistoryRepository
	sieges    ports.SiegeRepository
	snapshots ports.ActorSnapshotRepository
	tx        ports.TxManager
}

func main() {
	cfg, err := config.Load(envOr("CROWNHOLD_CONFIG", "./crownhold.yaml"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	r := mustBuildRepos()
	registry := actors.NewRegistry()
	seedNPCPopulation(registry)

	hub := ws.NewHub()
	go hub.Run()

	publisher := publish.NewWorkerWithQueue(publish.FileWriter{
		Path: envOr("CROWNHOLD_STATE_FILE", "./state/monarch.json"),
	}, cfg.PublishQueueSize)

	kpiRecorder := metricsinmem.NewRecorder()

	throneUC := throne.UseCase{
		TxManager: r.tx,
		Monarchs:  r.monarchs,
		History:   r.history,
		Snapshots: r.snapshots,
		Actors:    registry,
		Publisher: publisher,
		Notifier:  hub,
		Metrics:   kpiRecorder,
		Now:       time.Now,
	}
	siegeUC := siege.UseCase{
		TxManager: r.tx,
		Monarchs:  r.monarchs,
		History:   r.history,
		Sieges:    r.sieges,
		Snapshots: r.snapshots,
		Actors:    registry,
		Publisher: publisher,
		Notifier:  hub,
		Metrics:   kpiRecorder,
		Cooldown:  cfg.SiegeCooldown(),
		Now:       time.Now,
	}
	successionUC := succession.UseCase{
		TxManager: r.tx,
		Monarchs:  r.monarchs,
		History:   r.history,
		Actors:    registry,
		Publisher: publisher,
		Notifier:  hub,
		Now:       time.Now,
		TaxBase:   cfg.TaxBase,
	}

	h := httpadapter.Handler{
		ThroneUC: throneUC,
		SiegeUC:  siegeUC,
		CourtUC: court.UseCase{
			TxManager: r.tx,
			Monarchs:  r.monarchs,
			Publisher: publisher,
			Notifier:  hub,
			Metrics:   kpiRecorder,
			Now:       time.Now,
		},
		StatusUC:    status.UseCase{Monarchs: r.monarchs},
		ChronicleUC: chronicle.UseCase{History: r.history},
		KPI:         kpiRecorder,
	}

	go runSimulationLoops(cfg, successionUC)
	go serveNews(hub)

	s := server.Default(server.WithHostPorts(envOr("CROWNHOLD_HTTP_ADDR", ":8080")))
	h.RegisterRoutes(s)

	log.Printf("crownhold server listening on %s", envOr("CROWNHOLD_HTTP_ADDR", ":8080"))
	s.Spin()
}

func mustBuildRepos() repos {
	dsn := strings.TrimSpace(os.Getenv("CROWNHOLD_DB_DSN"))
	if dsn == "" {
		log.Println("CROWNHOLD_DB_DSN not set, using in-memory store")
		store := memrepo.NewStore()
		return repos{
			monarchs:  memrepo.NewMonarchRepo(store),
			history:   memrepo.NewHistoryRepo(store),
			sieges:    memrepo.NewSiegeRepo(store),
			snapshots: memrepo.NewSnapshotRepo(store),
			tx:        memrepo.NewTxManager(store),
		}
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if err := gormrepo.ApplyMigrations(context.Background(), db, envOr("CROWNHOLD_MIGRATIONS_DIR", "./migrations")); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}
	return repos{
		monarchs:  gormrepo.NewMonarchRepo(db),
		history:   gormrepo.NewHistoryRepo(db),
		sieges:    gormrepo.NewSiegeRepo(db),
		snapshots: gormrepo.NewSnapshotRepo(db),
		tx:        gormrepo.NewTxManager(db),
	}
}

// seedNPCPopulation registers a starter population so a vacant throne
// can always be filled. Player sessions register on top of these.
func seedNPCPopulation(registry *actors.Registry) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	names := []string{"Gorbag", "Thessaly", "Drunen", "Maribel", "Korvash", "Elowen"}
	for _, name := range names {
		level := 20 + rng.Intn(15)
		registry.Upsert(ports.Actor{
			Stats:    combat.EstimateForLevel(name, level),
			IsNPC:    true,
			Alive:    true,
			Charisma: int64(rng.Intn(100)),
			Chivalry: int64(rng.Intn(100)),
			Darkness: int64(rng.Intn(100)),
			Gold:     int64(rng.Intn(50000)),
		})
	}
}

func runSimulationLoops(cfg config.Config, uc succession.UseCase) {
	vacancy := time.NewTicker(cfg.VacancyCheckInterval())
	courtTick := time.NewTicker(cfg.CourtTickInterval())
	upkeep := time.NewTicker(cfg.DailyUpkeepInterval())
	defer vacancy.Stop()
	defer courtTick.Stop()
	defer upkeep.Stop()

	for {
		select {
		case <-vacancy.C:
			if _, err := uc.ResolveVacancy(context.Background()); err != nil {
				log.Printf("resolve vacancy: %v", err)
			}
		case <-courtTick.C:
			if err := uc.RunCourtPolitics(context.Background()); err != nil {
				log.Printf("court politics: %v", err)
			}
		case <-upkeep.C:
			if _, err := uc.RunDailyUpkeep(context.Background()); err != nil {
				log.Printf("daily upkeep: %v", err)
			}
		}
	}
}

func serveNews(hub *ws.Hub) {
	addr := envOr("CROWNHOLD_WS_ADDR", ":8081")
	mux := http.NewServeMux()
	mux.Handle("/ws/news", ws.Handler(hub))
	log.Printf("crownhold news feed listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("news feed stopped: %v", err)
	}
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
