package seeders

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fastbite-labs/fastbite-api/model"
)

// CatalogSeeder loads the default menu: categories plus their products.
type CatalogSeeder struct {
	db *gorm.DB
}

func NewCatalogSeeder(db *gorm.DB) *CatalogSeeder {
	return &CatalogSeeder{db: db}
}

type seedProduct struct {
	nombre      string
	descripcion string
	precio      float64
	destacado   bool
}

var seedCatalog = []struct {
	categoria   string
	descripcion string
	orden       int
	products    []seedProduct
}{
	{
		categoria:   "Hamburguesas",
		descripcion: "Hamburguesas jugosas con ingredientes frescos",
		orden:       1,
		products: []seedProduct{
			{"Hamburguesa Clásica", "Carne 100% res, lechuga, tomate, cebolla, pepinillos", 8.99, true},
			{"Hamburguesa Doble", "Doble carne, queso cheddar, tocino, salsa especial", 12.99, true},
			{"Hamburguesa Pollo", "Pechuga de pollo empanizada, lechuga, mayonesa", 9.99, false},
			{"Hamburguesa Vegetariana", "Hamburguesa de lentejas y vegetales, aguacate", 10.99, false},
		},
	},
	{
		categoria:   "Papas Fritas",
		descripcion: "Papas crujientes en diferentes tamaños",
		orden:       2,
		products: []seedProduct{
			{"Papas Pequeñas", "Porción individual de papas fritas crujientes", 2.99, false},
			{"Papas Medianas", "Porción mediana perfecta para acompañar", 3.99, false},
			{"Papas Grandes", "Porción familiar de papas fritas", 5.99, false},
		},
	},
	{
		categoria:   "Bebidas",
		descripcion: "Refrescos y bebidas frías",
		orden:       3,
		products: []seedProduct{
			{"Coca-Cola", "Refresco 500ml", 2.49, false},
			{"Sprite", "Refresco de lima-limón 500ml", 2.49, false},
			{"Agua Mineral", "Agua natural 600ml", 1.99, false},
		},
	},
	{
		categoria:   "Postres",
		descripcion: "Deliciosos postres para completar tu comida",
		orden:       4,
		products: []seedProduct{
			{"Helado de Vainilla", "Helado cremoso con salsa de chocolate", 3.99, false},
			{"Apple Pie", "Tarta de manzana caliente", 4.49, false},
		},
	},
}

func (s *CatalogSeeder) SeedCatalog() error {
	var count int64
	if err := s.db.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Catalog already exists, skipping catalog seeding")
		return nil
	}

	for _, entry := range seedCatalog {
		category := model.Category{
			ID:          uuid.Must(uuid.NewV7()).String(),
			Nombre:      entry.categoria,
			Descripcion: entry.descripcion,
			Orden:       entry.orden,
			Activo:      true,
		}
		if err := s.db.Create(&category).Error; err != nil {
			return err
		}

		for _, p := range entry.products {
			product := model.Product{
				ID:          uuid.Must(uuid.NewV7()).String(),
				Nombre:      p.nombre,
				Descripcion: p.descripcion,
				Precio:      p.precio,
				CategoryID:  category.ID,
				Destacado:   p.destacado,
				Activo:      true,
			}
			if err := s.db.Create(&product).Error; err != nil {
				return err
			}
		}
	}

	log.Println("Created default catalog")
	return nil
}
