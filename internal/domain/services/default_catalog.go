package services

import (
	"regexp"

	"github.com/ochairo/hashwatch/internal/domain/entities"
)

// DefaultPackage names the package tracked by DefaultCatalog
const DefaultPackage = "kicad"

const (
	kicadStatusBase   = "https://jenkins.simonrichter.eu/job/windows-kicad-msys2-pipeline/lastSuccessfulBuild/artifact/"
	kicadDownloadBase = "https://kicad-downloads.s3.cern.ch/windows/nightly/"
)

// DefaultCatalog returns the KiCad Windows nightly catalog
func DefaultCatalog() *Catalog {
	variants := make([]entities.VariantSpec, 0, 4)
	for _, v := range []struct{ arch, flavor string }{
		{"x86_64", ""},
		{"x86_64", "-lite"},
		{"i686", ""},
		{"i686", "-lite"},
	} {
		suffix := v.arch + v.flavor
		variants = append(variants, entities.VariantSpec{
			Name:                suffix,
			VersionPageURL:      kicadStatusBase + "pack-" + v.arch + "/",
			VersionPattern:      `kicad-r([\d]+\.[a-f0-9]+)-` + regexp.QuoteMeta(suffix) + `\.exe`,
			DownloadURLTemplate: kicadDownloadBase + "kicad-r{version}-" + suffix + ".exe",
		})
	}

	catalog, err := NewCatalog(DefaultPackage, variants, nil)
	if err != nil {
		panic("default catalog is invalid: " + err.Error())
	}
	return catalog
}
