package events

import (
	"bytes"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frc2036/territory/internal/game/core"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	var receivedEvent Event
	bus.SubscribeFunc(TypeGameStarted, func(e Event) {
		receivedEvent = e
	})

	bus.Publish(NewGameStartedEvent("test-game", 4, 32, false))

	require.NotNil(t, receivedEvent, "Event should have been received")
	assert.Equal(t, TypeGameStarted, receivedEvent.Type())
	assert.Equal(t, "test-game", receivedEvent.GameID())
	assert.False(t, receivedEvent.Timestamp().IsZero())
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	handler1Called := false
	handler2Called := false
	bus.SubscribeFunc(TypeTurnStarted, func(e Event) { handler1Called = true })
	bus.SubscribeFunc(TypeTurnStarted, func(e Event) { handler2Called = true })

	bus.Publish(NewTurnStartedEvent("test-game", 1, 0))

	assert.True(t, handler1Called, "Handler 1 should have been called")
	assert.True(t, handler2Called, "Handler 2 should have been called")
	assert.Equal(t, 2, bus.FuncHandlerCount(TypeTurnStarted))
}

// TestSubscriber records every event it is offered
type TestSubscriber struct {
	id              string
	interestedTypes map[string]bool
	receivedEvents  []Event
}

func (ts *TestSubscriber) ID() string {
	return ts.id
}

func (ts *TestSubscriber) HandleEvent(e Event) {
	ts.receivedEvents = append(ts.receivedEvents, e)
}

func (ts *TestSubscriber) InterestedIn(eventType string) bool {
	if ts.interestedTypes == nil {
		return true
	}
	return ts.interestedTypes[eventType]
}

func TestEventBusSubscriber(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	subscriber := &TestSubscriber{
		id: "test-subscriber",
		interestedTypes: map[string]bool{
			TypeGameStarted: true,
			TypeGameStopped: true,
		},
	}
	bus.Subscribe(subscriber)
	assert.Equal(t, 1, bus.SubscriberCount())

	bus.Publish(NewGameStartedEvent("test-game", 2, 8, false))
	bus.Publish(NewTurnStartedEvent("test-game", 1, 0))
	bus.Publish(NewGameStoppedEvent("test-game", 3, "admin"))

	require.Len(t, subscriber.receivedEvents, 2)
	assert.Equal(t, TypeGameStarted, subscriber.receivedEvents[0].Type())
	assert.Equal(t, TypeGameStopped, subscriber.receivedEvents[1].Type())

	bus.Unsubscribe(subscriber.ID())
	bus.Publish(NewGameStartedEvent("test-game", 2, 8, true))

	assert.Len(t, subscriber.receivedEvents, 2)
	assert.Equal(t, 0, bus.SubscriberCount())
}

func TestEventBusUnsubscribeFunc(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	calls := 0
	keep := 0
	id := bus.SubscribeFunc(TypeUnitMoved, func(Event) { calls++ })
	bus.SubscribeFunc(TypeUnitMoved, func(Event) { keep++ })

	army := &core.Unit{ID: 1, Kind: core.UnitArmy, Pos: core.NewCoordinate(0, 1)}
	bus.Publish(NewUnitMovedEvent("g", army, core.NewCoordinate(0, 0)))

	bus.UnsubscribeFunc(id)
	bus.UnsubscribeFunc("not-a-handler")
	bus.Publish(NewUnitMovedEvent("g", army, core.NewCoordinate(0, 0)))

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, keep)
	assert.Equal(t, 1, bus.FuncHandlerCount(TypeUnitMoved))
}

func TestEventBusRecoversFromHandlerPanic(t *testing.T) {
	var buf bytes.Buffer
	bus := NewEventBus(zerolog.New(&buf))

	after := false
	bus.SubscribeFunc(TypePlayerRenamed, func(Event) { panic("boom") })
	bus.SubscribeFunc(TypePlayerRenamed, func(Event) { after = true })

	assert.NotPanics(t, func() {
		bus.Publish(NewPlayerRenamedEvent("g", 0, "Red"))
	})
	assert.True(t, after, "later handlers still run")
	assert.Contains(t, buf.String(), "Event handler panicked")
}

func TestEventBusConcurrentPublish(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	var mu sync.Mutex
	count := 0
	bus.SubscribeFunc(TypeHarvestApplied, func(Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(player int) {
			defer wg.Done()
			bus.Publish(NewHarvestAppliedEvent("g", player%4, core.Yield{Food: 1}, 1))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, count)
}

func TestEventConstructors(t *testing.T) {
	capture := NewCityCapturedEvent("g", 1, 0, core.NewCoordinate(0, 0), 3)
	assert.Equal(t, TypeCityCaptured, capture.Type())
	assert.Equal(t, 3, capture.UnitsTransferred)

	city := &core.Unit{ID: 9, Kind: core.UnitWorker, Owner: 2, Pos: core.NewCoordinate(5, 5)}
	produced := NewUnitProducedEvent("g", city, 10)
	assert.Equal(t, 2, produced.PlayerID)
	assert.Equal(t, core.UnitID(9), produced.UnitID)
	assert.Equal(t, 10, produced.Cost)

	tech := NewTechResearchedEvent("g", 1, core.TechOffense, 1.25)
	assert.Equal(t, TypeTechResearched, tech.Type())
	assert.InDelta(t, 1.25, tech.NewStrength, 1e-9)

	transition := NewStateTransitionEvent("g", "lobby", "running", "admin start")
	assert.Equal(t, "running", transition.ToState)
}
