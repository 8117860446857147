package main

import "github.com/gogpu/hostapp"

const iconSize = 64

// demoIcon draws a diagonal two-tone icon.
func demoIcon() hostapp.Icon {
	data := make([]byte, 4*iconSize*iconSize)
	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			p := data[4*(y*iconSize+x):]
			if x+y < iconSize {
				p[0], p[1], p[2] = 0x30, 0x70, 0xd0
			} else {
				p[0], p[1], p[2] = 0xf0, 0xa0, 0x20
			}
			p[3] = 0xff
		}
	}
	return hostapp.Icon{Data: data, Width: iconSize, Height: iconSize}
}
