package client

import (
	"fmt"
	"sync"

	"github.com/vctt94/austerity/pkg/austerity"
)

// Following are the notification types. Add new types at the bottom of this
// list, then add a notifyX() to NotificationManager and initialize a new
// container in NewNotificationManager().

const onNewCardNtfnType = "onNewCard"

// OnNewCardNtfn is the handler for card revealed notifications.
type OnNewCardNtfn func(austerity.Card)

func (_ OnNewCardNtfn) typ() string { return onNewCardNtfnType }

const onTokensSetNtfnType = "onTokensSet"

// OnTokensSetNtfn is the handler for initial pile size notifications.
type OnTokensSetNtfn func(int)

func (_ OnTokensSetNtfn) typ() string { return onTokensSetNtfnType }

const onPurchasedNtfnType = "onPurchased"

// OnPurchasedNtfn is the handler for purchase notifications.
type OnPurchasedNtfn func(seat, card int, paid austerity.Wallet)

func (_ OnPurchasedNtfn) typ() string { return onPurchasedNtfnType }

const onTookNtfnType = "onTook"

// OnTookNtfn is the handler for token take notifications.
type OnTookNtfn func(seat int, taken austerity.TokenVec)

func (_ OnTookNtfn) typ() string { return onTookNtfnType }

const onWildNtfnType = "onWild"

// OnWildNtfn is the handler for wild take notifications.
type OnWildNtfn func(seat int)

func (_ OnWildNtfn) typ() string { return onWildNtfnType }

const onTurnNtfnType = "onTurn"

// OnTurnNtfn is the handler for our-turn (dowhat) notifications.
type OnTurnNtfn func()

func (_ OnTurnNtfn) typ() string { return onTurnNtfnType }

const onGameEndNtfnType = "onGameEnd"

// OnGameEndNtfn is the handler for terminal notifications. winners is the
// comma-separated winner letters for a normal end; seat is the faulting
// seat for disconnect and protocol-error ends, -1 otherwise.
type OnGameEndNtfn func(outcome Outcome, winners string, seat int)

func (_ OnGameEndNtfn) typ() string { return onGameEndNtfnType }

// The following is used only in tests.

const onTestNtfnType = "testNtfnType"

type onTestNtfn func()

func (_ onTestNtfn) typ() string { return onTestNtfnType }

// Following is the generic notification code.

type NotificationRegistration struct {
	unreg func() bool
}

func (reg NotificationRegistration) Unregister() bool {
	return reg.unreg()
}

type NotificationHandler interface {
	typ() string
}

type handler[T any] struct {
	handler T
	async   bool
}

type handlersFor[T any] struct {
	mtx      sync.Mutex
	next     uint
	handlers map[uint]handler[T]
}

func (hn *handlersFor[T]) register(h T, async bool) NotificationRegistration {
	var id uint

	hn.mtx.Lock()
	id, hn.next = hn.next, hn.next+1
	if hn.handlers == nil {
		hn.handlers = make(map[uint]handler[T])
	}
	hn.handlers[id] = handler[T]{handler: h, async: async}
	registered := true
	hn.mtx.Unlock()

	return NotificationRegistration{
		unreg: func() bool {
			hn.mtx.Lock()
			res := registered
			if registered {
				delete(hn.handlers, id)
				registered = false
			}
			hn.mtx.Unlock()
			return res
		},
	}
}

func (hn *handlersFor[T]) visit(f func(T)) {
	hn.mtx.Lock()
	for _, h := range hn.handlers {
		if h.async {
			go f(h.handler)
		} else {
			f(h.handler)
		}
	}
	hn.mtx.Unlock()
}

func (hn *handlersFor[T]) Register(v interface{}, async bool) NotificationRegistration {
	if h, ok := v.(T); !ok {
		panic("wrong type")
	} else {
		return hn.register(h, async)
	}
}

func (hn *handlersFor[T]) AnyRegistered() bool {
	hn.mtx.Lock()
	res := len(hn.handlers) > 0
	hn.mtx.Unlock()
	return res
}

type handlersRegistry interface {
	Register(v interface{}, async bool) NotificationRegistration
	AnyRegistered() bool
}

// NotificationManager fans game events out to registered callbacks.
type NotificationManager struct {
	handlers map[string]handlersRegistry
}

func (nmgr *NotificationManager) register(handler NotificationHandler, async bool) NotificationRegistration {
	handlers := nmgr.handlers[handler.typ()]
	if handlers == nil {
		panic(fmt.Sprintf("forgot to init the handler type %T "+
			"in NewNotificationManager", handler))
	}

	return handlers.Register(handler, async)
}

// Register registers a callback notification function that is called
// asynchronously to the event (i.e. in a separate goroutine).
func (nmgr *NotificationManager) Register(handler NotificationHandler) NotificationRegistration {
	return nmgr.register(handler, true)
}

// RegisterSync registers a callback notification function that is called
// synchronously to the event. This callback SHOULD return as soon as
// possible, otherwise the client might hang.
func (nmgr *NotificationManager) RegisterSync(handler NotificationHandler) NotificationRegistration {
	return nmgr.register(handler, false)
}

// AnyRegistered returns true if there are any handlers registered for the
// given handler type.
func (nmgr *NotificationManager) AnyRegistered(handler NotificationHandler) bool {
	return nmgr.handlers[handler.typ()].AnyRegistered()
}

func (nmgr *NotificationManager) notifyNewCard(c austerity.Card) {
	nmgr.handlers[onNewCardNtfnType].(*handlersFor[OnNewCardNtfn]).
		visit(func(h OnNewCardNtfn) { h(c) })
}

func (nmgr *NotificationManager) notifyTokensSet(n int) {
	nmgr.handlers[onTokensSetNtfnType].(*handlersFor[OnTokensSetNtfn]).
		visit(func(h OnTokensSetNtfn) { h(n) })
}

func (nmgr *NotificationManager) notifyPurchased(seat, card int, paid austerity.Wallet) {
	nmgr.handlers[onPurchasedNtfnType].(*handlersFor[OnPurchasedNtfn]).
		visit(func(h OnPurchasedNtfn) { h(seat, card, paid) })
}

func (nmgr *NotificationManager) notifyTook(seat int, taken austerity.TokenVec) {
	nmgr.handlers[onTookNtfnType].(*handlersFor[OnTookNtfn]).
		visit(func(h OnTookNtfn) { h(seat, taken) })
}

func (nmgr *NotificationManager) notifyWild(seat int) {
	nmgr.handlers[onWildNtfnType].(*handlersFor[OnWildNtfn]).
		visit(func(h OnWildNtfn) { h(seat) })
}

func (nmgr *NotificationManager) notifyTurn() {
	nmgr.handlers[onTurnNtfnType].(*handlersFor[OnTurnNtfn]).
		visit(func(h OnTurnNtfn) { h() })
}

func (nmgr *NotificationManager) notifyGameEnd(outcome Outcome, winners string, seat int) {
	nmgr.handlers[onGameEndNtfnType].(*handlersFor[OnGameEndNtfn]).
		visit(func(h OnGameEndNtfn) { h(outcome, winners, seat) })
}

func (nmgr *NotificationManager) notifyTest() {
	nmgr.handlers[onTestNtfnType].(*handlersFor[onTestNtfn]).
		visit(func(h onTestNtfn) { h() })
}

// NewNotificationManager creates a notification manager with every handler
// container initialized.
func NewNotificationManager() *NotificationManager {
	return &NotificationManager{
		handlers: map[string]handlersRegistry{
			onNewCardNtfnType:   &handlersFor[OnNewCardNtfn]{},
			onTokensSetNtfnType: &handlersFor[OnTokensSetNtfn]{},
			onPurchasedNtfnType: &handlersFor[OnPurchasedNtfn]{},
			onTookNtfnType:      &handlersFor[OnTookNtfn]{},
			onWildNtfnType:      &handlersFor[OnWildNtfn]{},
			onTurnNtfnType:      &handlersFor[OnTurnNtfn]{},
			onGameEndNtfnType:   &handlersFor[OnGameEndNtfn]{},
			onTestNtfnType:      &handlersFor[onTestNtfn]{},
		},
	}
}
