package service

import (
	"sort"
	"time"

	"warga-be-svc/pkg/logger"
)

// listWithOrderFallback runs the ordered scoped query and, when it fails
// (typically because the backing composite index is unavailable), re-issues
// the same query without ordering and sorts the result here, newest first.
// The fallback result is identical to what the ordered query would return.
func listWithOrderFallback[T any](
	log *logger.Logger,
	collection string,
	list func(ordered bool) ([]T, error),
	createdAt func(T) time.Time,
) ([]T, error) {
	items, err := list(true)
	if err == nil {
		return items, nil
	}

	log.WithError(err).WithField("collection", collection).Warn("Ordered query failed, retrying without ordering")

	items, err = list(false)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]).After(createdAt(items[j]))
	})

	return items, nil
}
