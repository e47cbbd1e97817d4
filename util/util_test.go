package util

import (
	"math"
	"testing"

	"github.com/fastvideo-cli/fastvideo/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFormatTime(t *testing.T) {
	Convey("FormatTime", t, func() {
		So(FormatTime(0), ShouldEqual, "0:00")
		So(FormatTime(9.9), ShouldEqual, "0:09")
		So(FormatTime(65), ShouldEqual, "1:05")
		So(FormatTime(3725), ShouldEqual, "62:05")

		Convey("Should treat invalid input as zero", func() {
			So(FormatTime(-3), ShouldEqual, "0:00")
			So(FormatTime(math.NaN()), ShouldEqual, "0:00")
		})
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestMax(t *testing.T) {
	Convey("Max", t, func() {
		So(Max(1, 5, 3), ShouldEqual, 5)
		So(Max(1.5, -2.0), ShouldEqual, 1.5)
		So(Max[int](), ShouldEqual, 0)
	})
}

func TestDelete(t *testing.T) {
	Convey("Delete", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()
		So(fs.MkdirAll("/tmp/fastvideo/ipc", 0o755), ShouldBeNil)
		So(fs.WriteFile("/tmp/fastvideo/ipc/a.sock", nil, 0o600), ShouldBeNil)

		Convey("Should remove directories recursively", func() {
			So(Delete("/tmp/fastvideo"), ShouldBeNil)
			exists, _ := fs.Exists("/tmp/fastvideo/ipc/a.sock")
			So(exists, ShouldBeFalse)
		})

		Convey("Should report missing paths", func() {
			So(Delete("/nope"), ShouldNotBeNil)
		})
	})
}
