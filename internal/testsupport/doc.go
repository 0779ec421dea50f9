// Package testsupport holds helpers shared by package tests: temp-dir
// configurations, shell-script stand-ins for ffmpeg and ffprobe, and media
// placeholder files.
package testsupport
