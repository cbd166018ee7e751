package render

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var nodeFill = map[NodeState]string{
	StateNormal:     "lightblue",
	StateLinkSource: "#ffd27f",
	StateEditing:    "#b7f0b1",
}

// WriteSVG draws a scene as a standalone SVG document. Links are drawn
// first so devices sit on top of them.
func WriteSVG(w io.Writer, s Scene) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(s.Width), num(s.Height), num(s.Width), num(s.Height))

	for _, l := range s.Links {
		fmt.Fprintf(bw, `  <line data-link="%s" x1="%s" y1="%s" x2="%s" y2="%s" stroke="black" stroke-width="2"/>`+"\n",
			escape(l.LinkID), num(l.From.X), num(l.From.Y), num(l.To.X), num(l.To.Y))
	}

	for _, n := range s.Nodes {
		fill, ok := nodeFill[n.State]
		if !ok {
			fill = nodeFill[StateNormal]
		}
		fmt.Fprintf(bw, `  <g data-device="%s">`+"\n", escape(n.DeviceID))
		fmt.Fprintf(bw, `    <rect x="%s" y="%s" width="%s" height="%s" fill="%s" stroke="black" stroke-width="1"/>`+"\n",
			num(n.Rect.X), num(n.Rect.Y), num(n.Rect.W), num(n.Rect.H), fill)
		fmt.Fprintf(bw, `    <text x="%s" y="%s" text-anchor="middle" dominant-baseline="middle" fill="#333">%s</text>`+"\n",
			num(n.Rect.X+n.Rect.W/2), num(n.Rect.Y+n.Rect.H/2), escape(n.Label))
		fmt.Fprintln(bw, `  </g>`)
	}

	fmt.Fprintln(bw, `</svg>`)
	return bw.Flush()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
