package seed

// Reference catalog for generated data. Publishers, authors and
// categories are static; books name their author, category and
// publisher so the generator can wire the references after those
// entities exist.

var publisherNames = []string{
	"Penguin Random House",
	"HarperCollins",
	"Simon & Schuster",
	"Macmillan Publishers",
	"Hachette Book Group",
	"O'Reilly Media",
	"Wiley",
	"Pearson Education",
	"McGraw-Hill Education",
	"Springer",
	"MIT Press",
	"Oxford University Press",
	"Cambridge University Press",
	"No Starch Press",
	"Manning Publications",
	"Apress",
	"Packt Publishing",
	"Bloomsbury Publishing",
	"Scholastic",
	"National Geographic Books",
}

var authorNames = []string{
	"Stephen King", "J.K. Rowling", "George R.R. Martin", "Agatha Christie",
	"Dan Brown", "James Patterson", "John Grisham", "Paulo Coelho",
	"Haruki Murakami", "Margaret Atwood", "Neil Gaiman", "Brandon Sanderson",
	"Malcolm Gladwell", "Yuval Noah Harari", "James Clear", "Cal Newport",
	"Daniel Kahneman", "Angela Duckworth",
	"Robert C. Martin", "Martin Fowler", "Eric Evans", "Kent Beck",
	"Marijn Haverbeke", "Don Norman", "Joshua Bloch",
	"Stephen Hawking", "Carl Sagan", "Richard Dawkins", "Bill Bryson",
	"Peter Thiel", "Eric Ries", "Jim Collins",
}

type categorySpec struct {
	Name     string
	Children []string
}

var categoryTree = []categorySpec{
	{Name: "Fiction", Children: []string{"Literary Fiction", "Contemporary Fiction", "Historical Fiction"}},
	{Name: "Mystery & Thriller", Children: []string{"Crime Fiction", "Psychological Thriller", "Detective Stories"}},
	{Name: "Science Fiction & Fantasy", Children: []string{"Epic Fantasy", "Space Opera", "Dystopian"}},
	{Name: "Romance", Children: []string{"Contemporary Romance", "Historical Romance", "Romantic Comedy"}},
	{Name: "Non-Fiction", Children: []string{"Biography & Memoir", "History", "True Crime"}},
	{Name: "Self-Help & Personal Development", Children: []string{"Productivity", "Relationships", "Mindfulness"}},
	{Name: "Business & Economics", Children: []string{"Entrepreneurship", "Leadership", "Investing"}},
	{Name: "Science & Technology", Children: []string{"Popular Science", "Computer Science", "Mathematics"}},
	{Name: "Programming & Software", Children: []string{"Web Development", "Software Engineering", "Data Science"}},
	{Name: "Art & Design", Children: []string{"Graphic Design", "Photography", "Architecture"}},
	{Name: "Children's Books", Children: []string{"Picture Books", "Middle Grade", "Young Adult"}},
	{Name: "Comics & Graphic Novels", Children: []string{"Superhero", "Manga", "Indie Comics"}},
	{Name: "Health & Wellness", Children: []string{"Fitness", "Nutrition", "Mental Health"}},
	{Name: "Cooking & Food", Children: []string{"Recipes", "Baking", "World Cuisine"}},
	{Name: "Travel & Adventure", Children: []string{"Travel Guides", "Adventure Stories", "Nature Writing"}},
}

type bookSpec struct {
	Title     string
	Author    string
	Category  string
	Publisher string
	Price     float64
	Desc      string
}

var bookCatalog = []bookSpec{
	{"The Great Gatsby", "F. Scott Fitzgerald", "Fiction", "Simon & Schuster", 14.99, "A novel of the Jazz Age that explores themes of decadence, idealism, and social upheaval in 1920s America."},
	{"It", "Stephen King", "Mystery & Thriller", "Penguin Random House", 19.99, "Seven adults return to their hometown to confront a shape-shifting evil they first faced as children."},
	{"The Shining", "Stephen King", "Mystery & Thriller", "Penguin Random House", 16.99, "A family heads to an isolated hotel for the winter where a sinister presence influences the father."},
	{"Harry Potter and the Sorcerer's Stone", "J.K. Rowling", "Science Fiction & Fantasy", "Scholastic", 24.99, "A young wizard discovers his magical heritage on his eleventh birthday."},
	{"A Game of Thrones", "George R.R. Martin", "Science Fiction & Fantasy", "Bloomsbury Publishing", 22.99, "Noble families vie for control of the Iron Throne of the Seven Kingdoms."},
	{"Murder on the Orient Express", "Agatha Christie", "Mystery & Thriller", "HarperCollins", 13.99, "Detective Hercule Poirot investigates a murder aboard a snowbound train."},
	{"The Da Vinci Code", "Dan Brown", "Mystery & Thriller", "Penguin Random House", 15.99, "A symbologist uncovers a trail of clues hidden in the works of Leonardo da Vinci."},
	{"The Alchemist", "Paulo Coelho", "Fiction", "HarperCollins", 12.99, "An Andalusian shepherd boy journeys to the Egyptian pyramids in search of treasure."},
	{"Norwegian Wood", "Haruki Murakami", "Fiction", "Penguin Random House", 15.99, "A nostalgic story of loss and burgeoning sexuality in 1960s Tokyo."},
	{"The Handmaid's Tale", "Margaret Atwood", "Science Fiction & Fantasy", "Penguin Random House", 15.99, "A dystopian novel set in a totalitarian society that treats women as property of the state."},
	{"American Gods", "Neil Gaiman", "Science Fiction & Fantasy", "HarperCollins", 17.99, "A war brews between the old gods of mythology and the new gods of technology."},
	{"The Way of Kings", "Brandon Sanderson", "Science Fiction & Fantasy", "Macmillan Publishers", 24.99, "An epic fantasy of war, storms, and ancient oaths on the shattered plains of Roshar."},
	{"Outliers", "Malcolm Gladwell", "Non-Fiction", "Hachette Book Group", 16.99, "An examination of the factors that contribute to high levels of success."},
	{"Sapiens", "Yuval Noah Harari", "Non-Fiction", "HarperCollins", 22.99, "A brief history of humankind, from the Stone Age to the twenty-first century."},
	{"Atomic Habits", "James Clear", "Self-Help & Personal Development", "Penguin Random House", 18.99, "An easy and proven way to build good habits and break bad ones."},
	{"Deep Work", "Cal Newport", "Self-Help & Personal Development", "Hachette Book Group", 17.99, "Rules for focused success in a distracted world."},
	{"Thinking, Fast and Slow", "Daniel Kahneman", "Non-Fiction", "Penguin Random House", 19.99, "A tour of the two systems that drive the way we think."},
	{"Grit", "Angela Duckworth", "Self-Help & Personal Development", "Simon & Schuster", 17.99, "The power of passion and perseverance in achievement."},
	{"Clean Code", "Robert C. Martin", "Programming & Software", "Pearson Education", 44.99, "A handbook of agile software craftsmanship."},
	{"Refactoring", "Martin Fowler", "Programming & Software", "Pearson Education", 49.99, "Improving the design of existing code."},
	{"Domain-Driven Design", "Eric Evans", "Programming & Software", "Pearson Education", 54.99, "Tackling complexity in the heart of software."},
	{"Test Driven Development", "Kent Beck", "Programming & Software", "Pearson Education", 39.99, "By example: a practical guide to test-first programming."},
	{"Eloquent JavaScript", "Marijn Haverbeke", "Programming & Software", "No Starch Press", 34.99, "A modern introduction to programming."},
	{"The Design of Everyday Things", "Don Norman", "Art & Design", "Hachette Book Group", 18.99, "How design serves as the communication between object and user."},
	{"Effective Java", "Joshua Bloch", "Programming & Software", "Pearson Education", 49.99, "Best practices for the Java platform."},
	{"A Brief History of Time", "Stephen Hawking", "Science & Technology", "Penguin Random House", 16.99, "From the Big Bang to black holes."},
	{"Cosmos", "Carl Sagan", "Science & Technology", "Penguin Random House", 18.99, "A personal voyage through the universe."},
	{"The Selfish Gene", "Richard Dawkins", "Science & Technology", "Oxford University Press", 15.99, "A gene-centred view of evolution."},
	{"A Short History of Nearly Everything", "Bill Bryson", "Science & Technology", "Penguin Random House", 17.99, "A whirlwind tour of science and its history."},
	{"Zero to One", "Peter Thiel", "Business & Economics", "Penguin Random House", 17.99, "Notes on startups, or how to build the future."},
	{"The Lean Startup", "Eric Ries", "Business & Economics", "Penguin Random House", 18.99, "How constant innovation creates radically successful businesses."},
	{"Good to Great", "Jim Collins", "Business & Economics", "HarperCollins", 21.99, "Why some companies make the leap and others don't."},
}

var bookImages = []string{
	"https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=400",
	"https://images.unsplash.com/photo-1532012197267-da84d127e765?w=400",
	"https://images.unsplash.com/photo-1543002588-bfa74002ed7e?w=400",
	"https://images.unsplash.com/photo-1512820790803-83ca734da794?w=400",
	"https://images.unsplash.com/photo-1497633762265-9d179a990aa6?w=400",
	"https://images.unsplash.com/photo-1495446815901-a7297e633e8d?w=400",
	"https://images.unsplash.com/photo-1524578271613-d550eacf6090?w=400",
	"https://images.unsplash.com/photo-1476275466078-4007374efbbe?w=400",
}

var firstNames = []string{
	"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael",
	"Linda", "William", "Elizabeth", "David", "Barbara", "Richard", "Susan",
	"Joseph", "Jessica", "Thomas", "Sarah", "Daniel", "Karen",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
}

var streetNames = []string{"Main", "Oak", "Maple", "Cedar", "Pine", "Elm"}

var streetTypes = []string{"Street", "Avenue", "Boulevard", "Drive", "Lane"}

var cityNames = []string{
	"New York", "Los Angeles", "Chicago", "Houston", "Phoenix",
	"Philadelphia", "San Antonio", "San Diego", "Dallas", "San Jose",
}

// reviewTexts includes empty strings so some ratings carry no content.
var reviewTexts = []string{
	"Absolutely loved this book! Couldn't put it down.",
	"A masterpiece that everyone should read.",
	"Well-written and thought-provoking.",
	"Great storytelling and character development.",
	"This book changed my perspective.",
	"Highly recommend for anyone interested in the topic.",
	"An essential read for the genre.",
	"Beautifully crafted narrative.",
	"Engaging from start to finish.",
	"A must-have for your bookshelf.",
	"Good read, but a bit slow in the middle.",
	"Interesting concepts, decent execution.",
	"Not my favorite, but still worth reading.",
	"Average book, nothing special.",
	"Expected more based on the reviews.",
	"Disappointing ending, but good overall.",
	"",
	"",
}

var paymentMethodNames = []string{
	"COD (Cash on Delivery)",
	"PayPal",
	"Stripe",
	"Credit Card",
}
