// Package main provides C-compatible functions for building a shared library.
// Build with: go build -buildmode=c-shared -o libreversi.so ./pkg/capi
package main

/*
#include <stdlib.h>
#include <stdint.h>
*/
import "C"
import (
	"sync"
	"unsafe"

	"github.com/yourusername/reversiengine/pkg/engine"
)

var (
	globalEngine *engine.Engine
	engineMutex  sync.RWMutex
	lastError    string
	errorMutex   sync.Mutex
)

// setError stores an error message for later retrieval.
func setError(err error) {
	errorMutex.Lock()
	defer errorMutex.Unlock()
	if err != nil {
		lastError = err.Error()
	} else {
		lastError = ""
	}
}

// currentEngine returns the engine, creating one at the default depth if
// reversi_init was never called.
func currentEngine() *engine.Engine {
	engineMutex.RLock()
	eng := globalEngine
	engineMutex.RUnlock()
	if eng != nil {
		return eng
	}

	engineMutex.Lock()
	defer engineMutex.Unlock()
	if globalEngine == nil {
		globalEngine, _ = engine.NewEngine(engine.DefaultOptions())
	}
	return globalEngine
}

//export reversi_version
func reversi_version() *C.char {
	return C.CString(version)
}

//export reversi_last_error
func reversi_last_error() *C.char {
	errorMutex.Lock()
	defer errorMutex.Unlock()
	if lastError == "" {
		return nil
	}
	return C.CString(lastError)
}

//export reversi_init
func reversi_init(depth C.int) C.int {
	engineMutex.Lock()
	defer engineMutex.Unlock()

	eng, err := engine.NewEngine(engine.Options{Depth: int(depth)})
	if err != nil {
		setError(err)
		return -1
	}

	globalEngine = eng
	setError(nil)
	return 0
}

//export reversi_shutdown
func reversi_shutdown() {
	engineMutex.Lock()
	defer engineMutex.Unlock()
	globalEngine = nil
}

//export reversi_face
func reversi_face() *C.char {
	return C.CString(currentEngine().Face())
}

// reversi_place is the host move callback. cells points to 36 row-major
// cell codes (0 empty, 1 black, 2 white). It returns 1 and fills x, y with
// the chosen placement, 0 when stone must pass, or -1 on bad input.
//
//export reversi_place
func reversi_place(cells *C.int32_t, stone C.int, x, y *C.int) C.int {
	if cells == nil || x == nil || y == nil {
		setError(errNilArgument)
		return -1
	}
	codes := unsafe.Slice((*int32)(unsafe.Pointer(cells)), engine.Size*engine.Size)

	m, ok, err := place(currentEngine(), codes, int(stone))
	if err != nil {
		setError(err)
		return -1
	}
	setError(nil)
	if !ok {
		return 0
	}
	*x, *y = C.int(m.X), C.int(m.Y)
	return 1
}

//export reversi_evaluate
func reversi_evaluate(position *C.char, stone C.int, resultJSON **C.char) C.int {
	return respond(resultJSON, func() (string, error) {
		return evaluateJSON(C.GoString(position), int(stone))
	})
}

//export reversi_best_move
func reversi_best_move(position *C.char, stone C.int, resultJSON **C.char) C.int {
	return respond(resultJSON, func() (string, error) {
		return bestMoveJSON(currentEngine(), C.GoString(position), int(stone))
	})
}

//export reversi_legal_moves
func reversi_legal_moves(position *C.char, stone C.int, resultJSON **C.char) C.int {
	return respond(resultJSON, func() (string, error) {
		return legalJSON(C.GoString(position), int(stone))
	})
}

// respond runs fn and stores its JSON, or an error object, in *resultJSON.
func respond(resultJSON **C.char, fn func() (string, error)) C.int {
	if resultJSON == nil {
		setError(errNilArgument)
		return -1
	}
	out, err := fn()
	if err != nil {
		setError(err)
		*resultJSON = C.CString(errorJSON(err))
		return -1
	}
	setError(nil)
	*resultJSON = C.CString(out)
	return 0
}

//export reversi_free_string
func reversi_free_string(s *C.char) {
	if s != nil {
		C.free(unsafe.Pointer(s))
	}
}

func main() {}
