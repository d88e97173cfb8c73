package service

import (
	"context"
	"errors"

	"xote-events-backend/cmd/xote-events/model"
)

type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type ImportResult struct {
	Created []model.Event `json:"created"`
	Failed  []RowError    `json:"failed"`
}

// Import creates one event per row. Invalid rows are reported and skipped;
// a storage failure stops the batch and is returned with the partial result.
// Rows are numbered from 1, excluding the header.
func (s *EventService) Import(ctx context.Context, rows []model.EventCSV) (ImportResult, error) {
	result := ImportResult{
		Created: []model.Event{},
		Failed:  []RowError{},
	}

	for i, row := range rows {
		req, err := row.CreateRequest()
		if err == nil {
			var created *model.Event
			created, err = s.Create(ctx, req)
			if err == nil {
				result.Created = append(result.Created, *created)
				continue
			}
		}

		var serr *StorageError
		if errors.As(err, &serr) {
			return result, err
		}
		result.Failed = append(result.Failed, RowError{Row: i + 1, Error: err.Error()})
	}

	return result, nil
}
