// Package feed fans funding-progress events out to websocket subscribers.
// The donation service publishes an event after every committed donation;
// clients subscribe per campaign.
package feed

import "context"

// Event is one funding update for a campaign.
type Event struct {
	CampaignID    int64   `json:"campaign_id"`
	DonationID    int64   `json:"donation_id"`
	Amount        float64 `json:"amount"`
	CurrentAmount float64 `json:"current_amount"`
	GoalAmount    float64 `json:"goal_amount"`
	DonorName     string  `json:"donor_name"`
	Message       string  `json:"message,omitempty"`
}

// Subscriber receives events for a single campaign on Events.
type Subscriber struct {
	CampaignID int64
	Events     chan Event
}

// Publisher is the side of the hub the donation service needs.
type Publisher interface {
	Publish(ev Event)
}

type Hub struct {
	subscribers map[int64]map[*Subscriber]struct{}

	register   chan *Subscriber
	unregister chan *Subscriber
	events     chan Event
}

const (
	subscriberBuffer = 8
	publishBuffer    = 64
)

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[int64]map[*Subscriber]struct{}),
		register:    make(chan *Subscriber),
		unregister:  make(chan *Subscriber),
		events:      make(chan Event, publishBuffer),
	}
}

// Run owns the subscriber map; stop via context cancellation in main() for
// graceful shutdown.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for _, subs := range h.subscribers {
				for sub := range subs {
					close(sub.Events)
				}
			}
			h.subscribers = make(map[int64]map[*Subscriber]struct{})
			return
		case sub := <-h.register:
			subs, ok := h.subscribers[sub.CampaignID]
			if !ok {
				subs = make(map[*Subscriber]struct{})
				h.subscribers[sub.CampaignID] = subs
			}
			subs[sub] = struct{}{}
		case sub := <-h.unregister:
			if subs, ok := h.subscribers[sub.CampaignID]; ok {
				if _, present := subs[sub]; present {
					delete(subs, sub)
					close(sub.Events)
					if len(subs) == 0 {
						delete(h.subscribers, sub.CampaignID)
					}
				}
			}
		case ev := <-h.events:
			for sub := range h.subscribers[ev.CampaignID] {
				select {
				case sub.Events <- ev:
				default:
					// Slow consumer; drop the event rather than stall the hub.
				}
			}
		}
	}
}

// Subscribe registers a new subscriber for a campaign's events.
func (h *Hub) Subscribe(campaignID int64) *Subscriber {
	sub := &Subscriber{
		CampaignID: campaignID,
		Events:     make(chan Event, subscriberBuffer),
	}
	h.register <- sub
	return sub
}

// Unsubscribe removes the subscriber and closes its channel.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.unregister <- sub
}

// Publish queues an event for fan-out. Never blocks the caller; if the hub
// is saturated the event is dropped (the feed is advisory, the ledger is the
// source of truth).
func (h *Hub) Publish(ev Event) {
	select {
	case h.events <- ev:
	default:
	}
}
