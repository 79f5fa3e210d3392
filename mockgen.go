//go:build generate

package quichp

//go:generate sh -c "go run go.uber.org/mock/mockgen -package mocks -destination internal/mocks/key_schedule.go github.com/nettrix/quichp KeySchedule"
