package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const runColumns = "id, started_at, finished_at, project_path, output_path, speaker1_path, speaker2_path, dry_run, params_json, counts_json, status, error_kind, error_message"

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		id           string
		startedRaw   string
		finishedRaw  sql.NullString
		projectPath  sql.NullString
		outputPath   sql.NullString
		speaker1     string
		speaker2     string
		dryRun       int64
		paramsJSON   string
		countsJSON   string
		statusStr    string
		errorKind    sql.NullString
		errorMessage sql.NullString
	)
	if err := scanner.Scan(
		&id,
		&startedRaw,
		&finishedRaw,
		&projectPath,
		&outputPath,
		&speaker1,
		&speaker2,
		&dryRun,
		&paramsJSON,
		&countsJSON,
		&statusStr,
		&errorKind,
		&errorMessage,
	); err != nil {
		return nil, err
	}

	run := &Run{
		ID:           id,
		ProjectPath:  projectPath.String,
		OutputPath:   outputPath.String,
		Speaker1Path: speaker1,
		Speaker2Path: speaker2,
		DryRun:       dryRun != 0,
		Status:       Status(statusStr),
		ErrorKind:    errorKind.String,
		ErrorMessage: errorMessage.String,
	}
	if started, err := parseTimeString(startedRaw); err == nil {
		run.StartedAt = started
	}
	if finishedRaw.Valid {
		if finished, err := parseTimeString(finishedRaw.String); err == nil {
			run.FinishedAt = finished
		}
	}
	if err := json.Unmarshal([]byte(paramsJSON), &run.Params); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(countsJSON), &run.Counts); err != nil {
		return nil, err
	}
	return run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value time.Time) any {
	if value.IsZero() {
		return nil
	}
	return value.UTC().Format(timeLayout)
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
