package engine

import . "github.com/ChizhovVadim/CounterGames/pkg/common"

const historyMax = 1 << 14

type historyKey[M comparable] struct {
	side Side
	move M
}

type historyService[M comparable] struct {
	table map[historyKey[M]]int16
}

func (h *historyService[M]) ReadTotal(side Side, m M) int {
	return int(h.table[historyKey[M]{side, m}])
}

func (h *historyService[M]) Update(side Side, searched []M, bestMove M, depth int) {
	if h.table == nil {
		h.table = make(map[historyKey[M]]int16)
	}
	var bonus = Min(depth*depth, 400)
	for _, m := range searched {
		var good = m == bestMove
		var key = historyKey[M]{side, m}
		var v = h.table[key]
		updateHistory(&v, bonus, good)
		h.table[key] = v
		if good {
			break
		}
	}
}

// Exponential moving average
func updateHistory(v *int16, bonus int, good bool) {
	var newVal int
	if good {
		newVal = historyMax
	} else {
		newVal = -historyMax
	}
	*v += int16((newVal - int(*v)) * bonus / 512)
}

func (h *historyService[M]) Clear() {
	h.table = nil
}

func (e *Engine[B, M]) updateKiller(move M, height int) {
	var frame = &e.stack[height]
	if !frame.killer1.is(move) {
		frame.killer2 = frame.killer1
		frame.killer1 = some(move)
	}
}
