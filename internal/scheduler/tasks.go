package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskProfessionalScreening = "professionals.screening"

type ProfessionalScreeningPayload struct {
	ProfessionalID string `json:"professionalId"`
}

func NewProfessionalScreeningTask(payload ProfessionalScreeningPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskProfessionalScreening, data), nil
}

func ParseProfessionalScreeningPayload(task *asynq.Task) (ProfessionalScreeningPayload, error) {
	var payload ProfessionalScreeningPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ProfessionalScreeningPayload{}, err
	}
	return payload, nil
}
