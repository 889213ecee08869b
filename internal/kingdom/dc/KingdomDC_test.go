package dc

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"TreeKingdom/internal/kingdom/entity"
	"TreeKingdom/internal/kingdom/sim"
)

type fakeRepo struct {
	mu    sync.Mutex
	saved []uint64
	failN int
}

func (r *fakeRepo) LoadKingdom(ctx context.Context, playerID int64) (*sim.State, error) {
	return nil, nil
}

func (r *fakeRepo) Snapshot(ctx context.Context, s *entity.KingdomPersistSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failN > 0 {
		r.failN--
		return errors.New("mongo down")
	}
	r.saved = append(r.saved, s.Version)
	return nil
}

func (r *fakeRepo) savedVersions() []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]uint64, len(r.saved))
	copy(out, r.saved)
	return out
}

// blockingRepo 写库前先上报版本号并等放行，用来观察写队列的时序。
type blockingRepo struct {
	fakeRepo
	entered chan uint64
	release chan struct{}
}

func (r *blockingRepo) Snapshot(ctx context.Context, s *entity.KingdomPersistSnapshot) error {
	r.entered <- s.Version
	<-r.release
	return r.fakeRepo.Snapshot(ctx, s)
}

func newDirtyKingdom(t *testing.T) *entity.Kingdom {
	t.Helper()
	eng := sim.New(1, "tester", sim.DefaultTuning())
	eng.InitFresh()
	return entity.NewKingdom(1, eng)
}

// redirty 推两拍引擎，让聚合重新标脏。
func redirty(t *testing.T, k *entity.Kingdom) {
	t.Helper()
	for i := 0; i < 50; i++ {
		k.Engine().Advance()
		if k.Dirty() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("引擎没有重新标脏")
}

func waitSaved(t *testing.T, r *fakeRepo, n int) []uint64 {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if got := r.savedVersions(); len(got) >= n {
			return got
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("等待落库超时, saved=%v", r.savedVersions())
	return nil
}

func TestKingdomDC_FlushThenClose(t *testing.T) {
	repo := &fakeRepo{}
	d := NewKingdomDC(repo, time.Second)
	d.Attach(newDirtyKingdom(t))

	d.Flush(context.Background())
	if err := d.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}

	got := repo.savedVersions()
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("应落一版快照, got %v", got)
	}
	if d.IsDirty() {
		t.Fatalf("落库后脏标记应清掉")
	}
}

func TestKingdomDC_不脏不写(t *testing.T) {
	repo := &fakeRepo{}
	d := NewKingdomDC(repo, time.Second)
	k := newDirtyKingdom(t)
	k.ClearDirty()
	d.Attach(k)

	d.Flush(context.Background())
	if err := d.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := repo.savedVersions(); len(got) != 0 {
		t.Fatalf("不脏不应落库, got %v", got)
	}
}

func TestKingdomDC_写失败重试(t *testing.T) {
	repo := &fakeRepo{failN: 2}
	d := NewKingdomDC(repo, time.Second)
	d.Attach(newDirtyKingdom(t))

	d.Flush(context.Background())
	got := waitSaved(t, repo, 1)
	if got[0] != 1 {
		t.Fatalf("重试后应落第 1 版, got %v", got)
	}
	if err := d.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestKingdomDC_队列只留最高版本(t *testing.T) {
	repo := &blockingRepo{
		entered: make(chan uint64),
		release: make(chan struct{}),
	}
	d := NewKingdomDC(repo, time.Second)
	k := newDirtyKingdom(t)
	d.Attach(k)

	d.Flush(context.Background())
	if v := <-repo.entered; v != 1 {
		t.Fatalf("首写应是版本 1, got %d", v)
	}

	// 写协程被第 1 版拖住时又生成两版，队列里只应留下第 3 版
	redirty(t, k)
	d.Flush(context.Background())
	redirty(t, k)
	d.Flush(context.Background())

	repo.release <- struct{}{}
	if v := <-repo.entered; v != 3 {
		t.Fatalf("中间版本应被挤掉, got %d", v)
	}
	repo.release <- struct{}{}

	if err := d.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	got := repo.savedVersions()
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("期望落 1、3 两版, got %v", got)
	}
}

func TestKingdomDC_Close超时透传(t *testing.T) {
	repo := &blockingRepo{
		entered: make(chan uint64),
		release: make(chan struct{}),
	}
	d := NewKingdomDC(repo, time.Second)
	d.Attach(newDirtyKingdom(t))

	d.Flush(context.Background())
	<-repo.entered // 写协程卡住

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := d.Close(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("排空不及时应报超时, got %v", err)
	}
	repo.release <- struct{}{}
}
