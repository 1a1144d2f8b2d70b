// Package blocklet wraps the blocklet and yarn CLIs used to develop themes.
//
// All commands run in the theme folder. [CreateDID] and [Bundle] block
// until the tool exits; [StartStudio] leaves the dev server running and
// only reports the URL it announces.
package blocklet
