package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hirehub/internal/fixtures"
	"hirehub/internal/gateway"
	"hirehub/internal/gateway/gatewaytest"
	"hirehub/internal/storage"
	"hirehub/internal/store"
	"hirehub/internal/validator"
)

type recorder struct {
	tracked []Change
	noted   []Change
}

func (r *recorder) Track(c Change, _ any) { r.tracked = append(r.tracked, c) }
func (r *recorder) Note(c Change)         { r.noted = append(r.noted, c) }

func (r *recorder) count(collection string, action Action) int {
	n := 0
	for _, c := range r.tracked {
		if c.Collection == collection && c.Action == action {
			n++
		}
	}
	return n
}

type testEnv struct {
	*Container
	env      *Env
	rec      *recorder
	remote   *gatewaytest.Remote
	detector *gateway.Detector
	kv       *storage.MemoryKV
	persist  *storage.PersistentStore
}

// newTestEnv - сервисы над демо-данными, сервер "онлайн" и отвечает тем, что задаст тест
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	kv := storage.NewMemoryKV()
	persist := storage.NewPersistentStore(kv, "test_")
	rec := &recorder{}
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	env := &Env{
		Stores:    store.NewSet(persist),
		Tracker:   rec,
		Validator: validator.New(),
		Now: func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		},
	}

	demo := fixtures.MustLoad()
	env.Stores.Users.Seed(demo.Users)
	env.Stores.Jobs.Seed(demo.Jobs)
	env.Stores.Applications.Seed(demo.Applications)

	remote := &gatewaytest.Remote{}
	detector := gateway.NewDetector()
	detector.Latch(true)

	return &testEnv{
		Container: NewContainer(env, persist, remote, detector, fixtures.MustLoad()),
		env:       env,
		rec:       rec,
		remote:    remote,
		detector:  detector,
		kv:        kv,
		persist:   persist,
	}
}

func (te *testEnv) signIn(t *testing.T, id string) {
	t.Helper()
	u, ok := te.env.Stores.Users.Get(id)
	require.True(t, ok)
	te.Session.finishSignIn(u, "", ActivityLogin)
}
