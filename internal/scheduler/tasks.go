package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskOrderConfirmation = "orders.confirmation"

// OrderLinePayload is one order line carried inside a task payload.
type OrderLinePayload struct {
	Name      string  `json:"name"`
	Length    int     `json:"length"`
	Density   string  `json:"density"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

type OrderConfirmationPayload struct {
	Reference     string             `json:"reference"`
	AmountKobo    int64              `json:"amountKobo"`
	CustomerEmail string             `json:"customerEmail"`
	CustomerPhone string             `json:"customerPhone,omitempty"`
	Lines         []OrderLinePayload `json:"lines"`
}

func NewOrderConfirmationTask(payload OrderConfirmationPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderConfirmation, data), nil
}

func ParseOrderConfirmationPayload(task *asynq.Task) (OrderConfirmationPayload, error) {
	var payload OrderConfirmationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return OrderConfirmationPayload{}, err
	}
	return payload, nil
}
