package locker

import "context"

// AdvisoryLocker serialises dispatch critical sections across processes.
// fn runs in one transaction that holds the lock: repository calls made with
// the ctx passed to fn commit when fn returns nil and roll back otherwise.
type AdvisoryLocker interface {
	WithLock(ctx context.Context, key int64, fn func(ctx context.Context) error) error
}
