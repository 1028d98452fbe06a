package service

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"firsgate/internal/filex"
	"firsgate/internal/port"
)

// Health status values.
const (
	HealthHealthy  = "healthy"
	HealthDegraded = "degraded"
)

// Dependency check outcomes.
const (
	CheckOK          = "ok"
	CheckDisabled    = "disabled"
	CheckUnreachable = "unreachable"
)

const probeTimeout = 5 * time.Second

// Pinger is a dependency that can report its reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthInfo identifies the running build.
type HealthInfo struct {
	Version        string
	Environment    string
	CryptoKeysPath string
}

// HealthReport is the system health view.
type HealthReport struct {
	Status      string         `json:"status"`
	Timestamp   string         `json:"timestamp"`
	Version     string         `json:"version"`
	Environment string         `json:"environment"`
	Checks      map[string]any `json:"checks,omitempty"`
}

// HealthService reports liveness, readiness, and dependency health.
type HealthService interface {
	Check(ctx context.Context, detailed bool) *HealthReport
	Ready(ctx context.Context) error
}

type healthService struct {
	info      HealthInfo
	encryptor port.Encryptor
	store     port.ArtifactStore
	upstream  port.UpstreamClient
	db        Pinger
	archive   Pinger
	now       func() time.Time
}

// NewHealthService creates a new HealthService. db and archive may be nil
// when those integrations are disabled.
func NewHealthService(
	info HealthInfo,
	encryptor port.Encryptor,
	store port.ArtifactStore,
	upstreamClient port.UpstreamClient,
	db Pinger,
	archive Pinger,
) HealthService {
	return &healthService{
		info:      info,
		encryptor: encryptor,
		store:     store,
		upstream:  upstreamClient,
		db:        db,
		archive:   archive,
		now:       time.Now,
	}
}

func (s *healthService) storageWritable() bool {
	for _, dir := range s.store.Dirs() {
		if err := os.MkdirAll(dir, 0o755); err != nil || !filex.Writable(dir) {
			return false
		}
	}
	return true
}

// Check reports basic build information and, when detailed, probes every
// dependency concurrently. Any failed probe marks the report degraded.
func (s *healthService) Check(ctx context.Context, detailed bool) *HealthReport {
	report := &HealthReport{
		Status:      HealthHealthy,
		Timestamp:   s.now().UTC().Format("2006-01-02T15:04:05Z"),
		Version:     s.info.Version,
		Environment: s.info.Environment,
	}
	if !detailed {
		return report
	}

	var (
		mu     sync.Mutex
		checks = make(map[string]any)
		failed bool
	)
	set := func(name string, value any, ok bool) {
		mu.Lock()
		defer mu.Unlock()
		checks[name] = value
		if !ok {
			failed = true
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ok := filex.Exists(s.info.CryptoKeysPath)
		set("crypto_keys_exists", ok, ok)
		return nil
	})
	g.Go(func() error {
		err := s.encryptor.SelfTest()
		set("encryption_self_test", err == nil, err == nil)
		return nil
	})
	g.Go(func() error {
		ok := s.storageWritable()
		set("storage_writable", ok, ok)
		return nil
	})
	g.Go(func() error {
		if !s.upstream.Enabled() {
			set("firs_api", CheckDisabled, true)
			return nil
		}
		pctx, cancel := context.WithTimeout(gctx, probeTimeout)
		defer cancel()
		if s.upstream.TestConnectivity(pctx) {
			set("firs_api", CheckOK, true)
		} else {
			set("firs_api", CheckUnreachable, false)
		}
		return nil
	})
	for name, p := range map[string]Pinger{"database": s.db, "archive": s.archive} {
		g.Go(func() error {
			if p == nil {
				set(name, CheckDisabled, true)
				return nil
			}
			pctx, cancel := context.WithTimeout(gctx, probeTimeout)
			defer cancel()
			if err := p.Ping(pctx); err != nil {
				set(name, CheckUnreachable, false)
				return nil
			}
			set(name, CheckOK, true)
			return nil
		})
	}
	_ = g.Wait()

	report.Checks = checks
	if failed {
		report.Status = HealthDegraded
	}
	return report
}

// Ready reports whether the service can sign: the key must encrypt and every
// artifact directory must be writable.
func (s *healthService) Ready(_ context.Context) error {
	if err := s.encryptor.SelfTest(); err != nil {
		return fmt.Errorf("service.Ready: %w", err)
	}
	if !s.storageWritable() {
		return fmt.Errorf("service.Ready: artifact storage is not writable")
	}
	return nil
}
