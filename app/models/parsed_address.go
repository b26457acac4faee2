package models

// Field nilai hasil resolusi satu komponen alamat.
// Confidence 0 berarti belum ter-resolve.
type Field struct {
	Value      string `json:"value" bson:"value"`
	ID         string `json:"id,omitempty" bson:"id,omitempty"`
	Confidence int    `json:"confidence" bson:"confidence"`
}

// IsResolved true jika field punya nilai dengan confidence > 0
func (f Field) IsResolved() bool {
	return f.Value != "" && f.Confidence > 0
}

// ConfidenceManual confidence untuk nilai yang dipilih/diketik manual
const ConfidenceManual = 100

// Field names
const (
	FieldProvince   = "province"
	FieldRegency    = "regency"
	FieldDistrict   = "district"
	FieldVillage    = "village"
	FieldPostalCode = "postal_code"
	FieldStreet     = "street"
	FieldRT         = "rt"
	FieldRW         = "rw"
)

// ParsedAddress hasil parsing alamat
type ParsedAddress struct {
	Province   Field `json:"province" bson:"province"`
	Regency    Field `json:"regency" bson:"regency"`
	District   Field `json:"district" bson:"district"`
	Village    Field `json:"village" bson:"village"`
	PostalCode Field `json:"postal_code" bson:"postal_code"`
	Street     Field `json:"street" bson:"street"`
	RT         Field `json:"rt" bson:"rt"`
	RW         Field `json:"rw" bson:"rw"`
}

// UnitField membangun Field dari unit wilayah
func UnitField(u AdministrativeUnit, confidence int) Field {
	return Field{Value: u.Name, ID: u.ID, Confidence: confidence}
}

// WithProvince pilihan manual provinsi; kabupaten/kota, kecamatan, kelurahan dikosongkan
func (p ParsedAddress) WithProvince(u AdministrativeUnit) ParsedAddress {
	p.Province = UnitField(u, ConfidenceManual)
	return p.clearBelow(LevelProvince)
}

// WithRegency pilihan manual kabupaten/kota; kecamatan & kelurahan dikosongkan
func (p ParsedAddress) WithRegency(u AdministrativeUnit) ParsedAddress {
	p.Regency = UnitField(u, ConfidenceManual)
	return p.clearBelow(LevelRegency)
}

// WithDistrict pilihan manual kecamatan; kelurahan dikosongkan
func (p ParsedAddress) WithDistrict(u AdministrativeUnit) ParsedAddress {
	p.District = UnitField(u, ConfidenceManual)
	return p.clearBelow(LevelDistrict)
}

// WithVillage pilihan manual kelurahan/desa
func (p ParsedAddress) WithVillage(u AdministrativeUnit) ParsedAddress {
	p.Village = UnitField(u, ConfidenceManual)
	return p
}

// WithUnit memilih unit sesuai levelnya
func (p ParsedAddress) WithUnit(u AdministrativeUnit) ParsedAddress {
	switch u.Level {
	case LevelProvince:
		return p.WithProvince(u)
	case LevelRegency:
		return p.WithRegency(u)
	case LevelDistrict:
		return p.WithDistrict(u)
	case LevelVillage:
		return p.WithVillage(u)
	}
	return p
}

// clearBelow mengosongkan semua level administrasi di bawah level
func (p ParsedAddress) clearBelow(level Level) ParsedAddress {
	if level < LevelRegency {
		p.Regency = Field{}
	}
	if level < LevelDistrict {
		p.District = Field{}
	}
	if level < LevelVillage {
		p.Village = Field{}
	}
	return p
}

// SelectedID ID unit terpilih pada level
func (p ParsedAddress) SelectedID(level Level) string {
	switch level {
	case LevelProvince:
		return p.Province.ID
	case LevelRegency:
		return p.Regency.ID
	case LevelDistrict:
		return p.District.ID
	case LevelVillage:
		return p.Village.ID
	}
	return ""
}

// Lookup mengambil field berdasarkan nama
func (p ParsedAddress) Lookup(name string) (Field, bool) {
	switch name {
	case FieldProvince:
		return p.Province, true
	case FieldRegency:
		return p.Regency, true
	case FieldDistrict:
		return p.District, true
	case FieldVillage:
		return p.Village, true
	case FieldPostalCode:
		return p.PostalCode, true
	case FieldStreet:
		return p.Street, true
	case FieldRT:
		return p.RT, true
	case FieldRW:
		return p.RW, true
	}
	return Field{}, false
}

// WithText mengisi field teks bebas (postal_code, street, rt, rw) secara manual
func (p ParsedAddress) WithText(name, value string) (ParsedAddress, bool) {
	f := Field{Value: value}
	if value != "" {
		f.Confidence = ConfidenceManual
	}
	switch name {
	case FieldPostalCode:
		p.PostalCode = f
	case FieldStreet:
		p.Street = f
	case FieldRT:
		p.RT = f
	case FieldRW:
		p.RW = f
	default:
		return p, false
	}
	return p, true
}
