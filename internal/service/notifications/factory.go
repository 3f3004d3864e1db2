package notifications

import (
	"context"
	"strings"
)

type actionFunc func(context.Context, Event) error

type actionFactory struct {
	byType map[string]actionFunc
}

func newActionFactory(onPaid actionFunc) *actionFactory {
	return &actionFactory{
		byType: map[string]actionFunc{
			TypeSessionCompleted:      onPaid,
			TypeAsyncPaymentSucceeded: onPaid,
		},
	}
}

func (f *actionFactory) get(typ string) (actionFunc, bool) {
	typ = strings.ToLower(strings.TrimSpace(typ))
	fn, ok := f.byType[typ]
	return fn, ok
}
