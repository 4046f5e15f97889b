package scheduler

import (
	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/domain"
)

// WindowResolver 将班次代码解析为当天的具体时间窗口
// 窗口表由外部传入，OFF 和未知的代码都表示当天没有可排休息的窗口
type WindowResolver struct {
	windows map[string]*domain.ShiftWindow
}

func NewWindowResolver(windows []*domain.ShiftWindow) *WindowResolver {
	m := make(map[string]*domain.ShiftWindow, len(windows))
	for _, w := range windows {
		m[w.Code] = w
	}

	return &WindowResolver{windows: m}
}

func (r *WindowResolver) Resolve(shiftCode string) (*domain.ShiftWindow, bool) {
	if shiftCode == domain.ShiftCodeOff {
		return nil, false
	}

	w, exists := r.windows[shiftCode]
	if !exists {
		return nil, false
	}

	return w, true
}
