package services

type eventDeps struct {
	rt *RealtimeHub
}

var _events eventDeps

func InitEventDeps(rt *RealtimeHub) {
	_events = eventDeps{rt: rt}
}

// EmitInventoryEvent broadcasts an item transition to websocket
// subscribers. Callers emit only after their transaction committed;
// the durable record is the inventory_events row written inside it.
func EmitInventoryEvent(kind string, itemID uint, idCode, fromStatus, toStatus string) {
	if _events.rt == nil {
		return
	}
	payload := map[string]any{
		"kind":    kind,
		"item_id": itemID,
		"id_code": idCode,
		"to":      toStatus,
	}
	if fromStatus != "" {
		payload["from"] = fromStatus
	}
	_events.rt.Broadcast(payload)
}
