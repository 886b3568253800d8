package progress

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest lists the section names a pipeline stage must deliver before the
// owning job or dossier counts as ready.
type Manifest struct {
	Name     string   `yaml:"name"`
	Sections []string `yaml:"sections"`
}

type ManifestSet struct {
	AnalysisJob  Manifest `yaml:"analysis_job"`
	AvatarMaster Manifest `yaml:"avatar_master"`
}

// DefaultManifests returns the section manifests for the current pipeline
// version. The master dossier also emits a free-standing "dolores" section,
// which is merged into pensamientos_internos at render time and therefore
// not required here.
func DefaultManifests() ManifestSet {
	return ManifestSet{
		AnalysisJob: Manifest{
			Name: "analysis_job",
			Sections: []string{
				"perfil_psicologico",
				"dolores",
				"deseos",
				"objeciones",
			},
		},
		AvatarMaster: Manifest{
			Name: "avatar_master",
			Sections: []string{
				"motivadores",
				"pensamientos_internos",
				"escenas_dolor",
				"experiencias_pasadas",
				"niveles_consciencia",
				"creencias_loc1_2",
				"creencias_loc3_4",
				"miedos_ocultos",
				"objeciones_y_faqs",
				"obstaculos",
			},
		},
	}
}

// LoadManifests reads a manifest override file. An empty path returns the
// defaults. A manifest missing from the file keeps its default sections.
func LoadManifests(path string) (ManifestSet, error) {
	manifests := DefaultManifests()
	if path == "" {
		return manifests, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return ManifestSet{}, fmt.Errorf("reading manifest file %s: %w", path, err)
	}
	override := ManifestSet{}
	if err := yaml.Unmarshal(content, &override); err != nil {
		return ManifestSet{}, fmt.Errorf("parsing manifest file %s: %w", path, err)
	}
	if len(override.AnalysisJob.Sections) > 0 {
		manifests.AnalysisJob = override.AnalysisJob
	}
	if len(override.AvatarMaster.Sections) > 0 {
		manifests.AvatarMaster = override.AvatarMaster
	}
	if err := manifests.validate(); err != nil {
		return ManifestSet{}, err
	}
	return manifests, nil
}

func (m ManifestSet) validate() error {
	for _, manifest := range []Manifest{m.AnalysisJob, m.AvatarMaster} {
		seen := make(map[string]struct{})
		for _, section := range manifest.Sections {
			normalized := NormalizeSection(section)
			if normalized == "" {
				return fmt.Errorf("manifest %s: empty section name", manifest.Name)
			}
			if _, ok := seen[normalized]; ok {
				return fmt.Errorf("manifest %s: duplicate section %q", manifest.Name, section)
			}
			seen[normalized] = struct{}{}
		}
	}
	return nil
}
