package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys shared by the page, the API and the spreadsheet export.
const (
	KeyPageTitle         = "page.title"
	KeySearchPlaceholder = "search.placeholder"
	KeySearchButton      = "search.button"
	KeySearchNotFound    = "search.not_found"
	KeyCardTypes         = "card.types"
	KeyCardStats         = "card.stats"
	KeyCardAbilities     = "card.abilities"
	KeyCardAddToCart     = "card.add_to_cart"
	KeyCartTitle         = "cart.title"
	KeyCartRemove        = "cart.remove"
	KeyCartClear         = "cart.clear"
	KeyCartEmpty         = "cart.empty"
	KeyCartExport        = "cart.export"
	KeyExportSheet       = "export.sheet"
	KeyExportID          = "export.id"
	KeyExportName        = "export.name"
	KeyExportQuantity    = "export.quantity"
	KeyExportImage       = "export.image"
)

func init() {
	es := language.Spanish
	message.SetString(es, KeyPageTitle, "PokeDeck")
	message.SetString(es, KeySearchPlaceholder, "Nombre o ID del Pokémon")
	message.SetString(es, KeySearchButton, "Buscar")
	message.SetString(es, KeySearchNotFound, "No se encontró el Pokémon. Intenta con otro nombre o ID.")
	message.SetString(es, KeyCardTypes, "Tipos")
	message.SetString(es, KeyCardStats, "Estadísticas")
	message.SetString(es, KeyCardAbilities, "Habilidades")
	message.SetString(es, KeyCardAddToCart, "Agregar al carrito")
	message.SetString(es, KeyCartTitle, "Carrito")
	message.SetString(es, KeyCartRemove, "Eliminar")
	message.SetString(es, KeyCartClear, "Vaciar carrito")
	message.SetString(es, KeyCartEmpty, "El carrito está vacío.")
	message.SetString(es, KeyCartExport, "Exportar a Excel")
	message.SetString(es, KeyExportSheet, "Carrito")
	message.SetString(es, KeyExportID, "ID")
	message.SetString(es, KeyExportName, "Nombre")
	message.SetString(es, KeyExportQuantity, "Cantidad")
	message.SetString(es, KeyExportImage, "Imagen")

	en := language.English
	message.SetString(en, KeyPageTitle, "PokeDeck")
	message.SetString(en, KeySearchPlaceholder, "Pokémon name or ID")
	message.SetString(en, KeySearchButton, "Search")
	message.SetString(en, KeySearchNotFound, "Pokémon not found. Try another name or ID.")
	message.SetString(en, KeyCardTypes, "Types")
	message.SetString(en, KeyCardStats, "Stats")
	message.SetString(en, KeyCardAbilities, "Abilities")
	message.SetString(en, KeyCardAddToCart, "Add to cart")
	message.SetString(en, KeyCartTitle, "Cart")
	message.SetString(en, KeyCartRemove, "Remove")
	message.SetString(en, KeyCartClear, "Clear cart")
	message.SetString(en, KeyCartEmpty, "The cart is empty.")
	message.SetString(en, KeyCartExport, "Export to Excel")
	message.SetString(en, KeyExportSheet, "Cart")
	message.SetString(en, KeyExportID, "ID")
	message.SetString(en, KeyExportName, "Name")
	message.SetString(en, KeyExportQuantity, "Quantity")
	message.SetString(en, KeyExportImage, "Image")
}

// Text prints key in the language of tag.
func Text(tag language.Tag, key string) string {
	return Printer(tag).Sprintf(key)
}
