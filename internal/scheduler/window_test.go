package scheduler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/domain"
	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/scheduler"
)

func TestWindowResolver_Resolve(t *testing.T) {
	resolver := scheduler.NewWindowResolver(testWindows())

	tests := map[string]struct {
		shiftCode string
		wantOK    bool
		wantStart string
	}{
		"已配置的班次": {shiftCode: "AM", wantOK: true, wantStart: "09:00:00"},
		"另一个班次":  {shiftCode: "PM", wantOK: true, wantStart: "13:00:00"},
		"休息日":    {shiftCode: "OFF", wantOK: false},
		"未知的代码":  {shiftCode: "NIGHT", wantOK: false},
		"空代码":    {shiftCode: "", wantOK: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			w, ok := resolver.Resolve(tc.shiftCode)
			if !tc.wantOK {
				assert.False(t, ok)
				assert.Nil(t, w)
				return
			}

			require.True(t, ok)
			require.NotNil(t, w)
			assert.Equal(t, tc.shiftCode, w.Code)
			assert.Equal(t, tc.wantStart, w.StartTime)
		})
	}
}

func TestWindowResolver_OffCodeAlwaysUnresolved(t *testing.T) {
	// 即使窗口表里误配了 OFF，也不能把它解析成可排休息的窗口
	windows := append(testWindows(), &domain.ShiftWindow{
		ID:        99,
		Code:      domain.ShiftCodeOff,
		StartTime: "09:00:00",
		EndTime:   "21:00:00",
	})
	resolver := scheduler.NewWindowResolver(windows)

	w, ok := resolver.Resolve(domain.ShiftCodeOff)
	assert.False(t, ok)
	assert.Nil(t, w)
}
