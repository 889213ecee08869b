package dc

import (
	"context"
	"sync"
	"time"

	"TreeKingdom/internal/kingdom/app/port"
	"TreeKingdom/internal/kingdom/entity"
)

// KingdomDC 负责王国聚合的加载与防抖落库。
//
// load 是全量加载到内存；flush 采用脏检查 + 同步快照 + 异步写库，
// 持久化粒度是"整文档覆盖"，不做列级更新。
// 状态只能经 actor 命令修改；若存在绕过 dc 的写（比如 GM 工具），
// 版本号保证旧快照不会覆盖新快照，但外部写仍会被下一次 flush 覆盖。
type KingdomDC struct {
	repo       port.KingdomRepository
	kingdom    *entity.Kingdom
	flushEvery time.Duration

	mu      sync.Mutex
	pending *entity.KingdomPersistSnapshot
	version uint64
	closed  bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

func NewKingdomDC(repo port.KingdomRepository, flushEvery time.Duration) *KingdomDC {
	d := &KingdomDC{
		repo:       repo,
		flushEvery: flushEvery,
		wake:       make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	go d.writerLoop()
	return d
}

// Attach 绑定聚合。加载/新建由调用方完成，DC 只管落库。
func (d *KingdomDC) Attach(k *entity.Kingdom) {
	d.kingdom = k
}

func (d *KingdomDC) Kingdom() *entity.Kingdom {
	return d.kingdom
}

func (d *KingdomDC) FlushEvery() time.Duration {
	return d.flushEvery
}

func (d *KingdomDC) IsDirty() bool {
	return d.kingdom.Dirty()
}

// Flush 不脏直接返回；否则取快照入队，由写协程异步落库。
func (d *KingdomDC) Flush(ctx context.Context) {
	if !d.IsDirty() {
		return
	}
	s, ok := d.buildNextSnapshot()
	if !ok {
		return
	}
	d.enqueueLatest(s)
}

// Close 最后一次 flush 后停写协程，排空队列才返回。
func (d *KingdomDC) Close(ctx context.Context) error {
	d.Flush(ctx)

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.stop)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *KingdomDC) buildNextSnapshot() (*entity.KingdomPersistSnapshot, bool) {
	if d.kingdom == nil {
		return nil, false
	}
	d.mu.Lock()
	d.version++
	version := d.version
	d.mu.Unlock()

	s, ok := d.kingdom.BuildPersistSnapshot(version)
	if !ok {
		return nil, false
	}
	d.kingdom.ClearDirty()
	return s, true
}

func (d *KingdomDC) enqueueLatest(s *entity.KingdomPersistSnapshot) {
	if s == nil {
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	if d.pending == nil || d.pending.Version < s.Version {
		d.pending = s
	}
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *KingdomDC) popPending() *entity.KingdomPersistSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.pending
	d.pending = nil
	return s
}

func (d *KingdomDC) requeueOnError(s *entity.KingdomPersistSnapshot) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	if d.pending == nil || d.pending.Version < s.Version {
		d.pending = s
	}
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *KingdomDC) writerLoop() {
	defer close(d.done)

	for {
		select {
		case <-d.wake:
			d.consumePending()
		case <-d.stop:
			d.consumePending()
			return
		}
	}
}

func (d *KingdomDC) consumePending() {
	for {
		s := d.popPending()
		if s == nil {
			return
		}
		if err := d.repo.Snapshot(context.TODO(), s); err != nil {
			// 写库失败重排当前快照；已有更新快照时会被更高 version 覆盖。
			d.requeueOnError(s)
			time.Sleep(200 * time.Millisecond)
			continue
		}
	}
}
