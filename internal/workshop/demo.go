package workshop

// Workshop is an entry of the built-in demo directory.
type Workshop struct {
	ID                    string   `json:"_id"`
	Type                  string   `json:"type"`
	Services              []string `json:"services"`
	OffersOutdoorServices bool     `json:"offersOutdoorServices"`
	Status                string   `json:"status"`
	WorkshopName          string   `json:"workshopName"`
	CRNumber              string   `json:"crNumber"`
	VATNumber             string   `json:"vatNumber"`
	LogoURL               string   `json:"logoUrl"`
	FrontPhotoURL         string   `json:"frontPhotoUrl"`
	Technicians           []string `json:"technicians"`
	Rating                float64  `json:"rating"`
	Address               string   `json:"address"`
	Phone                 string   `json:"phone"`
}

var demoWorkshops = []Workshop{
	{
		ID:                    "695935601369bcdad93f5f81",
		Type:                  "workshop",
		Services:              []string{"Oil Change", "Brake Repair", "Tire Service"},
		OffersOutdoorServices: true,
		Status:                "active",
		WorkshopName:          "AutoPro Solutions",
		CRNumber:              "1010123456",
		VATNumber:             "300012345600003",
		LogoURL:               "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcTgUfpQ6VgT90TjrCncQmagyauX5fKw9GByag&s",
		FrontPhotoURL:         "https://img.freepik.com/free-photo/car-being-taking-care-workshop_23-2149580532.jpg?semt=ais_hybrid&w=740&q=80",
		Technicians:           []string{"Ahmed", "Sami", "John"},
		Rating:                4.8,
		Address:               "King Fahd Rd, Riyadh",
		Phone:                 "+966 50 123 4567",
	},
	{
		ID:                    "695935601369bcdad93f5f82",
		Type:                  "workshop",
		Services:              []string{"Engine Tuning", "AC Repair"},
		OffersOutdoorServices: true,
		Status:                "pending",
		WorkshopName:          "QuickFix Garage",
		CRNumber:              "2020234567",
		VATNumber:             "300023456700003",
		LogoURL:               "https://img.freepik.com/premium-vector/auto-repair-garage-logo-automotive-industry_160069-63.jpg?semt=ais_hybrid&w=740&q=80",
		FrontPhotoURL:         "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcTxsjTcikRH1Rx1ItKN7ZNOg1csXojL89Aibw&s",
		Technicians:           []string{"ali", "zaid", "taha", "malik"},
		Rating:                4.5,
		Address:               "Al Tahlia St, Jeddah",
		Phone:                 "+966 55 987 6543",
	},
	{
		ID:                    "695935601369bcdad93f5f83",
		Type:                  "workshop",
		Services:              []string{"Paint Job", "Body Work"},
		OffersOutdoorServices: false,
		Status:                "active",
		WorkshopName:          "Elite Performance Center",
		CRNumber:              "3030345678",
		VATNumber:             "300034567800003",
		LogoURL:               "https://cbx-prod.b-cdn.net/COLOURBOX30616352.jpg?width=800&height=800&quality=70",
		FrontPhotoURL:         "https://media.istockphoto.com/id/1892179107/photo/cars-open-bonnet-parked-in-garage-for-repair-and-maintenance-service.jpg?s=612x612&w=0&k=20&c=wMIlCxuCPfCl-uWfUF_W1IzGZPPlIUUkbQq68kpKtvo=",
		Technicians:           []string{"Omar", "Khalid"},
		Rating:                5.0,
		Address:               "Prince Sultan Rd, Jeddah",
		Phone:                 "+966 54 111 2222",
	},
	{
		ID:                    "695935601369bcdad93f5f84",
		Type:                  "workshop",
		Services:              []string{"Battery", "Electrical"},
		OffersOutdoorServices: true,
		Status:                "active",
		WorkshopName:          "Modern Wheels Service",
		CRNumber:              "4040456789",
		VATNumber:             "300045678900003",
		LogoURL:               "https://www.logodesign.net/logo/car-and-sun-3567ld.png",
		FrontPhotoURL:         "https://media.istockphoto.com/id/1554627149/photo/auto-mechanic-are-repair-and-maintenance-auto-engine-is-problems-at-car-repair-shop.jpg?s=612x612&w=0&k=20&c=_zvBz-ZNgQhK5YgpihiLsOvjTC0yWFYsHEJt-WdCgp0=",
		Technicians:           []string{"Musa", "Ismail", "Yusuf"},
		Rating:                4.2,
		Address:               "Olaya St, Riyadh",
		Phone:                 "+966 56 333 4444",
	},
	{
		ID:                    "695935601369bcdad93f5f85",
		Type:                  "workshop",
		Services:              []string{"Tires", "Alignment"},
		OffersOutdoorServices: false,
		Status:                "active",
		WorkshopName:          "Tire & Brake Specialist",
		CRNumber:              "5050567890",
		VATNumber:             "300056789000003",
		LogoURL:               "https://www.logodesign.net/logo/car-tire-3568ld.png",
		FrontPhotoURL:         "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcS0UK91rBsDChCxzwFK6yHkcdWGkP3j6oNUJA&s",
		Technicians:           []string{"Ali", "Hassan"},
		Rating:                4.7,
		Address:               "Al Khobar Corniche",
		Phone:                 "+966 53 555 6666",
	},
	{
		ID:                    "695935601369bcdad93f5f86",
		Type:                  "workshop",
		Services:              []string{"Transmission", "Diagnostics"},
		OffersOutdoorServices: true,
		Status:                "pending",
		WorkshopName:          "Golden Key Auto",
		CRNumber:              "6060678901",
		VATNumber:             "300067890100003",
		LogoURL:               "https://www.shutterstock.com/image-vector/car-logo-design-automotive-showroom-600nw-2394683351.jpg",
		FrontPhotoURL:         "https://www.shutterstock.com/image-photo/eastern-ethnic-handsome-black-hair-600nw-2068470272.jpg",
		Technicians:           []string{"Ibrahim", "Yahya"},
		Rating:                4.4,
		Address:               "Dammam City Center",
		Phone:                 "+966 52 777 8888",
	},
	{
		ID:                    "695935601369bcdad93f5f87",
		Type:                  "workshop",
		Services:              []string{"Full Service", "Car Wash"},
		OffersOutdoorServices: true,
		Status:                "active",
		WorkshopName:          "Master Garage",
		CRNumber:              "7070789012",
		VATNumber:             "300078901200003",
		LogoURL:               "https://thumbs.dreamstime.com/b/concept-design-illustrator-vector-automotive-workshop-logo-template-isolated-white-transparent-background-car-repair-shop-158279325.jpg",
		FrontPhotoURL:         "https://www.getac.com/content/dam/uploads/2023/03/autorepairworkshop_cover.png",
		Technicians:           []string{"Saad", "Bilal", "Hamza"},
		Rating:                4.9,
		Address:               "Industrial Area, Riyadh",
		Phone:                 "+966 51 999 0000",
	},
	{
		ID:                    "695935601369bcdad93f5f88",
		Type:                  "workshop",
		Services:              []string{"Diagnostics", "Eco Repair"},
		OffersOutdoorServices: false,
		Status:                "active",
		WorkshopName:          "Eco Auto Service",
		CRNumber:              "8080890123",
		VATNumber:             "300089012300003",
		LogoURL:               "https://www.logodesign.net/logo/leaf-car-3571ld.png",
		FrontPhotoURL:         "https://www.shutterstock.com/image-photo/auto-body-technician-meticulously-inspecting-600nw-2703117191.jpg",
		Technicians:           []string{"Zayd", "Usman"},
		Rating:                4.6,
		Address:               "Diplomatic Quarter, Riyadh",
		Phone:                 "+966 50 222 3333",
	},
}

// Demo returns a copy of the built-in directory.
func Demo() []Workshop {
	out := make([]Workshop, len(demoWorkshops))
	copy(out, demoWorkshops)
	return out
}

// FindDemo looks a demo workshop up by its id string.
func FindDemo(id string) (Workshop, bool) {
	for _, w := range demoWorkshops {
		if w.ID == id {
			return w, true
		}
	}
	return Workshop{}, false
}
