package strategy

import "bot_executor/internal/indicator"

// Martingale управляет только размером позиции и сигналов не даёт.
type Martingale struct{}

func (Martingale) Key() Key { return KeyMartingale }

func (Martingale) Check(*indicator.Snapshot, int) Verdict {
	return Verdict{Reason: ReasonPositionSizingOnly}
}
