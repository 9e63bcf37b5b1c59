// Command scrawl inspects whiteboard document files: header summary,
// per-item table and resource table. It is a diagnostic consumer of the
// decoder; rendering is out of scope.
package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/go-andiamo/scrawl"
)

func main() {
	endian := pflag.String("endian", "big", "byte order of the document (big or little)")
	verbose := pflag.BoolP("verbose", "v", false, "print every item record")
	pflag.Parse()
	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: scrawl [flags] <file>")
		pflag.PrintDefaults()
		os.Exit(2)
	}
	var order binary.ByteOrder
	switch *endian {
	case "big":
		order = binary.BigEndian
	case "little":
		order = binary.LittleEndian
	default:
		fmt.Fprintf(os.Stderr, "unknown byte order %q\n", *endian)
		os.Exit(2)
	}
	data, err := os.ReadFile(pflag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	doc, err := scrawl.DecodeDocument(data, &scrawl.DecodeOptions{ByteOrder: order})
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode failed: %v\n", err)
		os.Exit(1)
	}
	printDocument(doc, *verbose)
}

func printDocument(doc *scrawl.Document, verbose bool) {
	h := doc.Header
	layout := "legacy"
	if h.Modern() {
		layout = "modern"
	}
	fmt.Printf("document  %s\n", h.DocID)
	fmt.Printf("version   %d (%s layout)\n", h.Version, layout)
	fmt.Printf("canvas    %g x %g, %d page(s)\n", h.CanvasWidth, h.CanvasHeight, h.PageCount)
	fmt.Printf("client    type %d, version %q\n", h.ClientType, h.ClientVersion)
	fmt.Printf("modified  %s\n", h.LastModified.Format("2006-01-02 15:04:05"))
	if h.Modern() {
		fmt.Printf("zipped    %v, background %s\n", h.Zipped, h.BackgroundColor)
	}
	if h.Skin != nil {
		fmt.Printf("skin      %g x %g, %d payload bytes\n", h.Skin.Width, h.Skin.Height, len(h.Skin.Data))
	}
	fmt.Printf("items     %d declared, %d decoded, %d placeholder(s)\n",
		h.ItemCount, doc.Stats.Items, doc.Stats.Placeholders)
	if doc.Stats.ForcedAdvances > 0 {
		fmt.Printf("          %d forced advance(s) during resynchronization\n", doc.Stats.ForcedAdvances)
	}
	if verbose {
		for i, item := range doc.Items {
			fmt.Printf("  [%4d] %-16s len=%-6d v=%-3d %s\n", i, item.Type, item.Length, item.Version, describeContent(item))
		}
	}
	if len(doc.Resources) > 0 {
		fmt.Printf("resources %d\n", len(doc.Resources))
		if verbose {
			for _, r := range doc.Resources {
				fmt.Printf("  [%6d] type=%d %d bytes\n", r.ID, r.Type, len(r.Payload))
			}
		}
	}
}

func describeContent(item *scrawl.Item) string {
	switch v := item.Content.(type) {
	case scrawl.TraceLine:
		return fmt.Sprintf("%d point(s)", len(v.Points))
	case scrawl.PressureLine:
		return fmt.Sprintf("%d pressure point(s)", len(v.Points))
	case scrawl.TimePressureLine:
		return fmt.Sprintf("%d timed point(s)", len(v.Points))
	case scrawl.PenLine:
		return fmt.Sprintf("%d point(s)", len(v.Points))
	case scrawl.Polyline:
		return fmt.Sprintf("%d point(s), visible=%v", len(v.Points), v.Visible)
	case scrawl.Shape:
		return fmt.Sprintf("%d control point(s)", len(v.Points))
	case scrawl.Text:
		return fmt.Sprintf("%q", v.Text)
	case scrawl.Pixmap:
		return fmt.Sprintf("%d payload bytes", len(v.Payload))
	case scrawl.Media:
		return fmt.Sprintf("%q %dms %d bytes", v.Filename, v.Duration, len(v.Payload))
	case scrawl.ShapeGroup:
		return fmt.Sprintf("%d child(ren)", len(v.Children))
	case scrawl.CircleArc:
		return fmt.Sprintf("r=%g %g..%g", v.Radius, v.StartAngle, v.EndAngle)
	case scrawl.Empty:
		return "-"
	}
	return "?"
}
