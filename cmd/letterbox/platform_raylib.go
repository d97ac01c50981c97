//go:build raylib

package main

import _ "github.com/gekko3d/letterbox/platform/raylib"
