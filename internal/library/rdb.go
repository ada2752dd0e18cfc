package library

import (
	"hash/crc32"
	"strconv"
	"strings"

	"github.com/user-none/eblitui/rdb"
	"github.com/user-none/eblitui/romloader"
)

// enrich fills display name, year and manufacturer from the RetroArch
// database bound to the system, matching ROMs by CRC32. Games whose ROM
// cannot be read or is not in the database keep their file-derived fields.
func (s *scanner) enrich(systemName string, games []Game) {
	db := s.database(systemName)
	if db == nil || len(games) == 0 {
		return
	}
	conf := s.databaseConf(systemName)
	matched := 0
	for i := range games {
		data, _, err := romloader.Load(games[i].Path, conf.Extensions)
		if err != nil {
			continue
		}
		entry := db.FindByCRC32(crc32.ChecksumIEEE(data))
		if entry == nil {
			continue
		}
		applyEntry(&games[i], entry)
		matched++
	}
	s.logger.Infof("library", "%s: %d/%d games matched in %s", systemName, matched, len(games), conf.Path)
}

func applyEntry(g *Game, entry *rdb.Game) {
	if name := rdb.GetDisplayName(entry.Name); name != "" {
		g.Name = name
	}
	if entry.ReleaseYear > 0 {
		g.Year = strconv.FormatUint(uint64(entry.ReleaseYear), 10)
	}
	switch {
	case entry.Publisher != "":
		g.Manufacturer = entry.Publisher
	case entry.Developer != "":
		g.Manufacturer = entry.Developer
	}
}

func (s *scanner) databaseConf(systemName string) Database {
	for _, d := range s.opts.Databases {
		if strings.EqualFold(d.System, systemName) {
			return d
		}
	}
	return Database{}
}

// database loads the RDB bound to systemName. A missing or unreadable file
// disables enrichment for that system only.
func (s *scanner) database(systemName string) *rdb.RDB {
	conf := s.databaseConf(systemName)
	if conf.Path == "" {
		return nil
	}
	db, err := rdb.LoadRDB(conf.Path)
	if err != nil {
		s.logger.Errorf("library", "rdb for %s: %v", systemName, err)
		return nil
	}
	return db
}
