package routes

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/teamcipx/portofolio-sub000/shared/models"
	"github.com/teamcipx/portofolio-sub000/shared/store"
	"github.com/teamcipx/portofolio-sub000/shared/validate"
)

// Collection names for the content surface.
const (
	ProjectsCollection     = "projects"
	ProductsCollection     = "products"
	BlogsCollection        = "blogs"
	TestimonialsCollection = "testimonials"
	MessagesCollection     = "messages"
	BookingsCollection     = "bookings"
)

// newestFirst sorts by creation time, which is what every listing shows.
var newestFirst = store.QueryOpts{SortBy: "createdAt", Desc: true}

// listFilter narrows a listing by the optional ?category query parameter.
func listFilter(c *fiber.Ctx) map[string]any {
	if cat := c.Query("category"); cat != "" {
		return map[string]any{"category": cat}
	}
	return nil
}

// ListProjectsHandler returns the portfolio entries, newest first.
func ListProjectsHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var projects []models.Project
		if err := d.Store.Query(c.Context(), ProjectsCollection, listFilter(c), &projects, newestFirst); err != nil {
			d.Log.WithError(err).Error("failed to list projects")
			projects = nil
		}
		if projects == nil {
			projects = []models.Project{}
		}
		return c.JSON(projects)
	}
}

// GetProjectHandler returns one portfolio entry.
func GetProjectHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var project models.Project
		found, err := d.Store.Get(c.Context(), ProjectsCollection, c.Params("id"), &project)
		if err != nil {
			d.Log.WithError(err).Error("failed to get project")
		}
		if !found {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "project not found"})
		}
		return c.JSON(project)
	}
}

// ListProductsHandler returns the storefront items, newest first.
func ListProductsHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := d.Store.Query(c.Context(), ProductsCollection, listFilter(c), &products, newestFirst); err != nil {
			d.Log.WithError(err).Error("failed to list products")
			products = nil
		}
		if products == nil {
			products = []models.Product{}
		}
		return c.JSON(products)
	}
}

// GetProductHandler returns one storefront item.
func GetProductHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var product models.Product
		found, err := d.Store.Get(c.Context(), ProductsCollection, c.Params("id"), &product)
		if err != nil {
			d.Log.WithError(err).Error("failed to get product")
		}
		if !found {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
		}
		return c.JSON(product)
	}
}

// ListBlogsHandler returns published posts, newest first.
func ListBlogsHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var blogs []models.Blog
		if err := d.Store.Query(c.Context(), BlogsCollection, nil, &blogs, newestFirst); err != nil {
			d.Log.WithError(err).Error("failed to list blogs")
			blogs = nil
		}
		if blogs == nil {
			blogs = []models.Blog{}
		}
		// Tag filtering is small in-memory work over the result.
		if tag := c.Query("tag"); tag != "" {
			filtered := blogs[:0]
			for _, b := range blogs {
				for _, t := range b.Tags {
					if t == tag {
						filtered = append(filtered, b)
						break
					}
				}
			}
			blogs = filtered
		}
		return c.JSON(blogs)
	}
}

// GetBlogHandler returns one post.
func GetBlogHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var blog models.Blog
		found, err := d.Store.Get(c.Context(), BlogsCollection, c.Params("id"), &blog)
		if err != nil {
			d.Log.WithError(err).Error("failed to get blog")
		}
		if !found {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "blog not found"})
		}
		return c.JSON(blog)
	}
}

// ListTestimonialsHandler returns client quotes in stable name order.
func ListTestimonialsHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var testimonials []models.Testimonial
		if err := d.Store.Query(c.Context(), TestimonialsCollection, nil, &testimonials, store.QueryOpts{}); err != nil {
			d.Log.WithError(err).Error("failed to list testimonials")
			testimonials = nil
		}
		if testimonials == nil {
			testimonials = []models.Testimonial{}
		}
		sort.SliceStable(testimonials, func(i, j int) bool {
			return testimonials[i].Name < testimonials[j].Name
		})
		return c.JSON(testimonials)
	}
}

// CreateMessageHandler stores a contact-form submission and notifies the
// owner.
func CreateMessageHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var msg models.Message
		if err := c.BodyParser(&msg); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := validate.Struct(msg); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		msg.CreatedAt = time.Now().UTC()

		id, err := d.Store.Insert(c.Context(), MessagesCollection, msg)
		if err != nil {
			d.Log.WithError(err).Error("failed to store message")
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "could not send message"})
		}
		d.Mailer.NotifyMessage(msg)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
	}
}

// CreateBookingHandler stores a consultation request and notifies the owner.
func CreateBookingHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var booking models.Booking
		if err := c.BodyParser(&booking); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := validate.Struct(booking); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		booking.CreatedAt = time.Now().UTC()

		id, err := d.Store.Insert(c.Context(), BookingsCollection, booking)
		if err != nil {
			d.Log.WithError(err).Error("failed to store booking")
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "could not create booking"})
		}
		d.Mailer.NotifyBooking(booking)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
	}
}
