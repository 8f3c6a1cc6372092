// Package products — каталог товаров.
// models.go описывает карточку товара и её представление в хранилище.
package products

// Product — карточка товара каталога.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Media       string `json:"media"`
	Description string `json:"description"`
	Featured    bool   `json:"featured"`
}

// IsEmpty: карточка без единого заполненного поля считается несуществующей
// (id может остаться в множестве после частичного удаления).
func (p *Product) IsEmpty() bool {
	return p.Name == "" && p.Category == "" && p.Media == "" && p.Description == ""
}

// fields сериализует карточку в поля хеша.
// featured хранится строкой "true"/"false" — так её писал и веб-интерфейс.
func (p *Product) fields() map[string]string {
	featured := "false"
	if p.Featured {
		featured = "true"
	}
	return map[string]string{
		"name":        p.Name,
		"category":    p.Category,
		"media":       p.Media,
		"description": p.Description,
		"featured":    featured,
	}
}

// productFromFields собирает карточку из полей хеша.
func productFromFields(id string, fields map[string]string) *Product {
	return &Product{
		ID:          id,
		Name:        fields["name"],
		Category:    fields["category"],
		Media:       fields["media"],
		Description: fields["description"],
		Featured:    fields["featured"] == "true",
	}
}

// UpdatePatch — частичное обновление карточки: nil-поле не трогает текущее значение.
type UpdatePatch struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	Media       *string `json:"media"`
	Description *string `json:"description"`
	Featured    *bool   `json:"featured"`
}
