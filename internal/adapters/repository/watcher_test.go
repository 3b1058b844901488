package repository

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRoleWatcher(t *testing.T) {
	Convey("Given a watcher on a roles file", t, func() {
		dir := t.TempDir()
		path := writeBaseline(t, dir, sampleRoles())

		var reloads atomic.Int32
		w := NewRoleWatcher(path, func(context.Context) error {
			reloads.Add(1)
			return nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		So(w.Start(ctx), ShouldBeNil)

		Convey("When the file is rewritten", func() {
			So(os.WriteFile(path, []byte(`[]`), 0o600), ShouldBeNil)

			Convey("Then a reload runs", func() {
				deadline := time.Now().Add(5 * time.Second)
				for reloads.Load() == 0 && time.Now().Before(deadline) {
					time.Sleep(20 * time.Millisecond)
				}
				So(reloads.Load(), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When a different file in the directory changes", func() {
			So(os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0o600), ShouldBeNil)
			time.Sleep(200 * time.Millisecond)

			Convey("Then nothing is reloaded", func() {
				So(reloads.Load(), ShouldEqual, 0)
			})
		})

		Convey("Then stopping twice is harmless", func() {
			So(w.Stop(), ShouldBeNil)
			So(w.Stop(), ShouldBeNil)
		})
	})
}
