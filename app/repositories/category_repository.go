package repositories

import "github.com/xcursi322/prakt/app/models"

type CategoryRepository struct{ base }

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

func (r *CategoryRepository) All() ([]models.Category, error) {
	var categories []models.Category
	err := r.query().Model(&models.Category{}).Order("name, id").Get(&categories)
	return categories, err
}

func (r *CategoryRepository) FindByID(id uint) (models.Category, error) {
	var c models.Category
	err := r.query().Model(&models.Category{}).Where("id = ?", id).First(&c)
	return c, notFound(err)
}
