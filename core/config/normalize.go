package config

const (
	defaultToggleRate  = 4.0
	defaultToggleBurst = 16
)

// Normalize fills in defaults for fields the file may omit.
func (f *File) Normalize() {
	for i := range f.Profiles {
		if f.Profiles[i].RequiresFullRadio == nil {
			full := true
			f.Profiles[i].RequiresFullRadio = &full
		}
	}
	if f.Toggle.RequestsPerSecond <= 0 {
		f.Toggle.RequestsPerSecond = defaultToggleRate
	}
	if f.Toggle.Burst <= 0 {
		f.Toggle.Burst = defaultToggleBurst
	}
}
