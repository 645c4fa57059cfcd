//go:build js && wasm

package main

import (
	"syscall/js"

	"go.uber.org/zap"

	"github.com/ThatOtherAndrew/Aetherfield/internal/config"
	"github.com/ThatOtherAndrew/Aetherfield/internal/engine"
	"github.com/ThatOtherAndrew/Aetherfield/internal/host/browser"
	"github.com/ThatOtherAndrew/Aetherfield/internal/logger"
)

const canvasID = "aetherfield"

func main() {
	log := logger.New(logger.Config{Level: "info", Component: "browser"})

	canvas, err := browser.New(canvasID, log)
	if err != nil {
		log.Error("Failed to attach to canvas", zap.Error(err))
		return
	}

	field := engine.New(canvas, config.Default(), log, engine.WithPresenceObserver(canvas.NotifyPresence))
	if err := field.Initialize(); err != nil {
		// The canvas stays blank; the page keeps working.
		log.Error("Field disabled", zap.Error(err))
	}

	done := make(chan struct{})
	var teardown js.Func
	teardown = js.FuncOf(func(js.Value, []js.Value) interface{} {
		if err := field.Teardown(); err != nil {
			log.Warn("Teardown reported errors", zap.Error(err))
		}
		canvas.Close()
		js.Global().Call("removeEventListener", "pagehide", teardown)
		teardown.Release()
		close(done)
		return nil
	})
	js.Global().Call("addEventListener", "pagehide", teardown)

	<-done
}
