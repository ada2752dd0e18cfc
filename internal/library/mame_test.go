package library

import (
	"path/filepath"
	"strings"
	"testing"
)

const listXML = `<?xml version="1.0"?>
<!DOCTYPE mame [
<!ELEMENT mame (machine+)>
]>
<mame build="0.261">
	<machine name="pacman" sourcefile="pacman.cpp">
		<description>Pac-Man (Midway)</description>
		<year>1980</year>
		<manufacturer>Namco (Midway license)</manufacturer>
		<input players="2" coins="2"/>
	</machine>
	<machine name="neogeo" isbios="yes" runnable="no">
		<description>Neo-Geo</description>
	</machine>
	<machine name="galaga">
		<description>Galaga &amp; Friends</description>
		<year>1981</year>
		<manufacturer>Namco</manufacturer>
	</machine>
	<machine name="mspacman">
		<description>Ms. Pac-Man</description>
	</machine>
</mame>`

func TestParseListXML(t *testing.T) {
	present := map[string]bool{
		filepath.Join("roms", "mame", "pacman.zip"): true,
		filepath.Join("roms", "mame", "galaga.zip"): true,
		filepath.Join("roms", "mame", "neogeo.zip"): true,
	}
	games, err := ParseListXML(strings.NewReader(listXML), filepath.Join("roms", "mame"), func(p string) bool { return present[p] })
	if err != nil {
		t.Fatalf("ParseListXML: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("got %d games, want 2: %+v", len(games), games)
	}

	pac := games[0]
	if pac.ID != "pacman" || pac.Name != "Pac-Man (Midway)" || pac.Year != "1980" ||
		pac.Manufacturer != "Namco (Midway license)" || pac.Players != "2" {
		t.Errorf("pacman = %+v", pac)
	}
	if pac.Path != filepath.Join("roms", "mame", "pacman.zip") {
		t.Errorf("pacman path = %q", pac.Path)
	}

	galaga := games[1]
	if galaga.Name != "Galaga & Friends" || galaga.Players != "1" {
		t.Errorf("galaga = %+v", galaga)
	}
}

func TestParseListXMLMissingFields(t *testing.T) {
	games, err := ParseListXML(strings.NewReader(`<mame><machine name="x"/></mame>`), "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 1 {
		t.Fatalf("got %d games", len(games))
	}
	if g := games[0]; g.Name != "x" || g.Year != unknown || g.Manufacturer != unknown {
		t.Errorf("defaults not applied: %+v", g)
	}
}

func TestParseListXMLTruncated(t *testing.T) {
	doc := `<mame><machine name="a"><description>A</description></machine><machine name="b"><descr`
	games, err := ParseListXML(strings.NewReader(doc), "", nil)
	if err == nil {
		t.Fatal("expected an error for a truncated document")
	}
	if len(games) != 1 || games[0].ID != "a" {
		t.Errorf("games read before the error = %+v", games)
	}
}
