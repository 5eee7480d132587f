package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given an initialized text logger", t, func() {
		var buf bytes.Buffer
		So(Init(WithWriter(&buf)), ShouldBeNil)
		defer func() { _ = Sync() }()

		Convey("When logging at info", func() {
			Get().Info(context.Background(), "season simulated", String("athlete", "a-1"), Int("season", 3))

			Convey("Then the fields and caller should be written", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "season simulated")
				So(out, ShouldContainSubstring, "athlete=a-1")
				So(out, ShouldContainSubstring, "season=3")
				So(out, ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When logging below the level", func() {
			Get().Debug(context.Background(), "hidden")

			Convey("Then nothing should be written", func() {
				So(buf.String(), ShouldBeEmpty)
			})
		})

		Convey("When the level is lowered to debug", func() {
			So(SetLevelString("DEBUG"), ShouldBeNil)
			Get().Debug(context.Background(), "visible")
			So(buf.String(), ShouldContainSubstring, "visible")
			So(SetLevelString("info"), ShouldBeNil)
		})
	})
}

func TestLoggerJSON(t *testing.T) {
	Convey("Given a JSON logger", t, func() {
		var buf bytes.Buffer
		So(Init(WithWriter(&buf), WithFormat(FormatJSON)), ShouldBeNil)

		Named("transfer").With(Bool("seeking", true)).Warn(context.Background(), "no offers")

		Convey("Then the output should be grouped JSON", func() {
			out := buf.String()
			So(strings.HasPrefix(out, "{"), ShouldBeTrue)
			So(out, ShouldContainSubstring, `"transfer"`)
			So(out, ShouldContainSubstring, `"seeking":true`)
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given an unknown level", t, func() {
		So(SetLevelString("loud"), ShouldNotBeNil)
	})
}

func TestNop(t *testing.T) {
	Convey("Given the nop logger", t, func() {
		l := Nop()
		So(func() { l.Error(context.Background(), "dropped", Error(nil)) }, ShouldNotPanic)
	})
}
