// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package main

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/wdamron/tinfer"
)

var (
	successColorFG = pterm.FgLightGreen
	successStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	errorColorFG   = pterm.FgRed
	errorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	infoColorFG    = pterm.FgLightCyan
	infoStyleBG    = pterm.NewStyle(pterm.BgLightCyan, pterm.FgBlack)

	tracePrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgGray),
		Prefix: pterm.Prefix{
			Style: pterm.NewStyle(pterm.BgGray, pterm.FgBlack),
			Text:  "TRACE",
		},
	}
)

// display writes tagged, colored messages to a command's output.
type display struct {
	w io.Writer
}

func (d display) message(tagStyle *pterm.Style, color pterm.Color, tag, msg string) {
	fmt.Fprintln(d.w, tagStyle.Sprint(" "+tag+" ")+" "+color.Sprint(msg))
}

func (d display) success(tag, msg string) { d.message(successStyleBG, successColorFG, tag, msg) }
func (d display) failure(tag, msg string) { d.message(errorStyleBG, errorColorFG, tag, msg) }
func (d display) info(tag, msg string)    { d.message(infoStyleBG, infoColorFG, tag, msg) }

// tracer returns a tracer printing to the display, or nil when tracing is disabled.
func (d display) tracer(enabled bool) tinfer.Tracer {
	if !enabled {
		return nil
	}
	return tinfer.TracerFunc(func(format string, args ...interface{}) {
		fmt.Fprint(d.w, tracePrinter.Sprintln(fmt.Sprintf(format, args...)))
	})
}
