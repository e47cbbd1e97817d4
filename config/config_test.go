package config

import (
	"testing"

	"github.com/fastvideo-cli/fastvideo/filesystem"
	"github.com/fastvideo-cli/fastvideo/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.IsSet(name), ShouldBeTrue)
			}
		})

		Convey("Should keep overlay timings at their documented defaults", func() {
			_ = Setup()
			So(viper.GetInt(key.OverlayHideDelay), ShouldEqual, 3000)
			So(viper.GetInt(key.OverlayRevealFade), ShouldEqual, 200)
			So(viper.GetInt(key.OverlayHideFade), ShouldEqual, 400)
			So(viper.GetInt(key.OverlayDoubleTapWindow), ShouldEqual, 300)
			So(viper.GetString(key.WatermarkPosition), ShouldEqual, "top-left")
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("watermark.offset_top")
			So(result, ShouldEqual, "watermark_offset_top")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.WatermarkOffsetTop]

		Convey("Env should carry the application prefix", func() {
			So(field.Env(), ShouldEqual, "FASTVIDEO_WATERMARK_OFFSET_TOP")
		})

		Convey("typeName should recognise floats", func() {
			So(field.typeName(), ShouldEqual, "float")
		})

		Convey("Every field should be documented", func() {
			for _, f := range Default {
				So(f.Description, ShouldNotBeEmpty)
			}
		})
	})
}
