//go:build ebiten

package main

import _ "github.com/gekko3d/letterbox/platform/ebiten"
