// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package retrieval

import "github.com/tomtom215/cinemoment/internal/models"

// builtinCatalog is the embedded dataset backing the offline fallback. It is
// intentionally small but spans eras, popularity tiers, and genres so the
// surprise engine still has material when the index is down. Ratings and
// counts are snapshots, not live data.
var builtinCatalog = map[models.Domain][]models.Candidate{
	models.DomainMovies: {
		{ID: "mv-278", Title: "The Shawshank Redemption", Year: 1994, Genres: []string{"drama", "crime"}, Rating: 8.7, Popularity: 98.4, VoteCount: 26482, RuntimeMinutes: 142, Overview: "Framed for murder, a banker forms an unlikely friendship over two decades inside Shawshank prison.", ReleaseDate: "1994-09-23"},
		{ID: "mv-238", Title: "The Godfather", Year: 1972, Genres: []string{"drama", "crime"}, Rating: 8.7, Popularity: 121.2, VoteCount: 19985, RuntimeMinutes: 175, Overview: "The aging patriarch of a crime dynasty transfers control to his reluctant youngest son.", ReleaseDate: "1972-03-14"},
		{ID: "mv-129", Title: "Spirited Away", Year: 2001, Genres: []string{"animation", "fantasy", "family"}, Rating: 8.5, Popularity: 88.9, VoteCount: 16450, RuntimeMinutes: 125, Overview: "A girl wanders into a world of spirits and must work in a bathhouse to free her parents.", ReleaseDate: "2001-07-20"},
		{ID: "mv-680", Title: "Pulp Fiction", Year: 1994, Genres: []string{"thriller", "crime"}, Rating: 8.5, Popularity: 95.1, VoteCount: 27310, RuntimeMinutes: 154, Overview: "The lives of two hitmen, a boxer and a pair of diner bandits intertwine in four tales of violence.", ReleaseDate: "1994-09-10"},
		{ID: "mv-389", Title: "12 Angry Men", Year: 1957, Genres: []string{"drama"}, Rating: 8.5, Popularity: 42.3, VoteCount: 8850, RuntimeMinutes: 97, Overview: "A lone juror slowly turns an open-and-shut murder case into a test of reasonable doubt.", ReleaseDate: "1957-04-10"},
		{ID: "mv-155", Title: "The Dark Knight", Year: 2008, Genres: []string{"action", "crime", "drama"}, Rating: 8.5, Popularity: 130.6, VoteCount: 32540, RuntimeMinutes: 152, Overview: "Batman faces an agent of chaos who pushes Gotham to the brink.", ReleaseDate: "2008-07-16"},
		{ID: "mv-497", Title: "The Green Mile", Year: 1999, Genres: []string{"drama", "fantasy", "crime"}, Rating: 8.5, Popularity: 76.8, VoteCount: 17210, RuntimeMinutes: 189, Overview: "Death-row guards encounter a gentle giant with an impossible gift.", ReleaseDate: "1999-12-10"},
		{ID: "mv-496243", Title: "Parasite", Year: 2019, Genres: []string{"comedy", "thriller", "drama"}, Rating: 8.5, Popularity: 92.7, VoteCount: 18930, RuntimeMinutes: 132, Overview: "A poor family schemes its way into service for a wealthy household, with consequences no one sees coming.", ReleaseDate: "2019-05-30"},
		{ID: "mv-122", Title: "The Lord of the Rings: The Return of the King", Year: 2003, Genres: []string{"adventure", "fantasy", "action"}, Rating: 8.5, Popularity: 104.3, VoteCount: 24110, RuntimeMinutes: 201, Overview: "The final battle for Middle-earth begins as Frodo nears Mount Doom.", ReleaseDate: "2003-12-17"},
		{ID: "mv-13", Title: "Forrest Gump", Year: 1994, Genres: []string{"comedy", "drama", "romance"}, Rating: 8.5, Popularity: 89.5, VoteCount: 27020, RuntimeMinutes: 142, Overview: "A slow-witted but kind man stumbles through three decades of American history.", ReleaseDate: "1994-07-06"},
		{ID: "mv-429", Title: "The Good, the Bad and the Ugly", Year: 1966, Genres: []string{"western"}, Rating: 8.5, Popularity: 51.7, VoteCount: 8640, RuntimeMinutes: 161, Overview: "Three gunslingers race to uncover a fortune in buried Confederate gold.", ReleaseDate: "1966-12-23"},
		{ID: "mv-769", Title: "GoodFellas", Year: 1990, Genres: []string{"drama", "crime"}, Rating: 8.5, Popularity: 67.4, VoteCount: 13260, RuntimeMinutes: 145, Overview: "Henry Hill rises through the mob and learns the life always collects.", ReleaseDate: "1990-09-12"},
		{ID: "mv-346", Title: "Seven Samurai", Year: 1954, Genres: []string{"action", "drama"}, Rating: 8.4, Popularity: 38.2, VoteCount: 3710, RuntimeMinutes: 207, Overview: "A village hires seven masterless samurai to defend its harvest from bandits.", ReleaseDate: "1954-04-26"},
		{ID: "mv-27205", Title: "Inception", Year: 2010, Genres: []string{"action", "science fiction", "thriller"}, Rating: 8.4, Popularity: 118.9, VoteCount: 36470, RuntimeMinutes: 148, Overview: "A thief who steals secrets through dreams takes one last job: planting an idea.", ReleaseDate: "2010-07-15"},
		{ID: "mv-157336", Title: "Interstellar", Year: 2014, Genres: []string{"science fiction", "drama", "adventure"}, Rating: 8.4, Popularity: 140.2, VoteCount: 35980, RuntimeMinutes: 169, Overview: "Explorers travel through a wormhole in search of a new home for humanity.", ReleaseDate: "2014-11-05"},
		{ID: "mv-4935", Title: "Howl's Moving Castle", Year: 2004, Genres: []string{"animation", "fantasy", "romance"}, Rating: 8.4, Popularity: 72.1, VoteCount: 9830, RuntimeMinutes: 119, Overview: "Cursed with old age, a young hatter seeks refuge in a wizard's walking castle.", ReleaseDate: "2004-11-19"},
		{ID: "mv-378064", Title: "A Silent Voice", Year: 2016, Genres: []string{"animation", "drama", "romance"}, Rating: 8.4, Popularity: 58.6, VoteCount: 4270, RuntimeMinutes: 130, Overview: "A former bully seeks redemption with the deaf girl he tormented in grade school.", ReleaseDate: "2016-09-17"},
		{ID: "mv-637", Title: "Life Is Beautiful", Year: 1997, Genres: []string{"comedy", "drama"}, Rating: 8.4, Popularity: 49.8, VoteCount: 12980, RuntimeMinutes: 116, Overview: "A father shields his son from the horror of a concentration camp by turning it into a game.", ReleaseDate: "1997-12-20"},
		{ID: "mv-696374", Title: "Gabriel's Inferno", Year: 2020, Genres: []string{"romance", "drama"}, Rating: 8.3, Popularity: 21.4, VoteCount: 2540, RuntimeMinutes: 122, Overview: "A brooding professor and a young student share a secret, long-buried past.", ReleaseDate: "2020-05-29"},
		{ID: "mv-244786", Title: "Whiplash", Year: 2014, Genres: []string{"drama", "music"}, Rating: 8.4, Popularity: 64.9, VoteCount: 15230, RuntimeMinutes: 107, Overview: "A young drummer enrolls under an instructor who will stop at nothing to realize a student's potential.", ReleaseDate: "2014-10-10"},
		{ID: "mv-77338", Title: "The Intouchables", Year: 2011, Genres: []string{"drama", "comedy"}, Rating: 8.3, Popularity: 55.2, VoteCount: 17740, RuntimeMinutes: 113, Overview: "A quadriplegic aristocrat hires a streetwise caretaker, and both lives change.", ReleaseDate: "2011-11-02"},
		{ID: "mv-598", Title: "City of God", Year: 2002, Genres: []string{"drama", "crime"}, Rating: 8.4, Popularity: 44.6, VoteCount: 7610, RuntimeMinutes: 130, Overview: "Two boys in a Rio favela take diverging paths: one a photographer, one a kingpin.", ReleaseDate: "2002-08-30"},
		{ID: "mv-11216", Title: "Cinema Paradiso", Year: 1988, Genres: []string{"drama", "romance"}, Rating: 8.4, Popularity: 30.8, VoteCount: 4380, RuntimeMinutes: 124, Overview: "A filmmaker recalls his childhood friendship with the projectionist of his village cinema.", ReleaseDate: "1988-11-17"},
		{ID: "mv-372058", Title: "Your Name.", Year: 2016, Genres: []string{"animation", "romance", "drama"}, Rating: 8.5, Popularity: 83.4, VoteCount: 11570, RuntimeMinutes: 106, Overview: "Two strangers find themselves intermittently swapping bodies across time and distance.", ReleaseDate: "2016-08-26"},
		{ID: "mv-324857", Title: "Spider-Man: Into the Spider-Verse", Year: 2018, Genres: []string{"animation", "action", "adventure"}, Rating: 8.4, Popularity: 110.5, VoteCount: 16290, RuntimeMinutes: 117, Overview: "Miles Morales meets alternate-dimension Spider-People and becomes his own hero.", ReleaseDate: "2018-12-06"},
		{ID: "mv-694", Title: "The Shining", Year: 1980, Genres: []string{"horror", "thriller"}, Rating: 8.2, Popularity: 74.3, VoteCount: 17420, RuntimeMinutes: 144, Overview: "A winter caretaker descends into madness inside an isolated mountain hotel.", ReleaseDate: "1980-05-23"},
		{ID: "mv-115", Title: "The Big Lebowski", Year: 1998, Genres: []string{"comedy", "crime"}, Rating: 7.8, Popularity: 47.9, VoteCount: 11020, RuntimeMinutes: 117, Overview: "A case of mistaken identity drags a slacker into a kidnapping plot he never asked for.", ReleaseDate: "1998-03-06"},
		{ID: "mv-19404", Title: "Dilwale Dulhania Le Jayenge", Year: 1995, Genres: []string{"comedy", "drama", "romance"}, Rating: 8.5, Popularity: 29.1, VoteCount: 4540, RuntimeMinutes: 190, Overview: "Two young Indians fall in love on a European trip and must win over a stern father.", ReleaseDate: "1995-10-20"},
		{ID: "mv-152601", Title: "Her", Year: 2013, Genres: []string{"romance", "science fiction", "drama"}, Rating: 7.9, Popularity: 61.7, VoteCount: 14880, RuntimeMinutes: 126, Overview: "A lonely writer develops a relationship with an operating system designed to meet his every need.", ReleaseDate: "2013-12-18"},
		{ID: "mv-76341", Title: "Mad Max: Fury Road", Year: 2015, Genres: []string{"action", "adventure", "science fiction"}, Rating: 7.6, Popularity: 97.8, VoteCount: 22950, RuntimeMinutes: 121, Overview: "In a post-apocalyptic wasteland, a drifter and a rebel warrior flee a tyrant across the desert.", ReleaseDate: "2015-05-13"},
		{ID: "mv-9660", Title: "After Life", Year: 1998, Genres: []string{"drama", "fantasy"}, Rating: 7.7, Popularity: 9.3, VoteCount: 410, RuntimeMinutes: 119, Overview: "The newly dead choose one memory to keep for eternity at a quiet way station.", ReleaseDate: "1998-09-11"},
		{ID: "mv-120467", Title: "The Grand Budapest Hotel", Year: 2014, Genres: []string{"comedy", "drama"}, Rating: 8.1, Popularity: 69.2, VoteCount: 15810, RuntimeMinutes: 100, Overview: "A legendary concierge and his lobby boy are framed for the theft of a priceless painting.", ReleaseDate: "2014-02-26"},
		{ID: "mv-1585", Title: "It's a Wonderful Life", Year: 1946, Genres: []string{"drama", "family", "fantasy"}, Rating: 8.2, Popularity: 33.5, VoteCount: 4490, RuntimeMinutes: 130, Overview: "An angel shows a despairing man what his town would be like without him.", ReleaseDate: "1946-12-20"},
		{ID: "mv-419430", Title: "Get Out", Year: 2017, Genres: []string{"horror", "thriller", "mystery"}, Rating: 7.6, Popularity: 66.1, VoteCount: 15120, RuntimeMinutes: 104, Overview: "A weekend meeting his girlfriend's parents takes a sinister turn.", ReleaseDate: "2017-02-24"},
		{ID: "mv-10494", Title: "Perfect Blue", Year: 1997, Genres: []string{"animation", "thriller", "mystery"}, Rating: 8.0, Popularity: 18.7, VoteCount: 1650, RuntimeMinutes: 81, Overview: "A retired pop idol's grip on reality frays as a stalker shadows her acting career.", ReleaseDate: "1997-07-25"},
		{ID: "mv-3082", Title: "Modern Times", Year: 1936, Genres: []string{"comedy", "drama"}, Rating: 8.2, Popularity: 22.8, VoteCount: 3670, RuntimeMinutes: 87, Overview: "The Tramp struggles to survive the machinery of the industrial age.", ReleaseDate: "1936-02-05"},
	},
	models.DomainTVSeries: {
		{ID: "tv-1396", Title: "Breaking Bad", Year: 2008, Genres: []string{"drama", "crime"}, Rating: 8.9, Popularity: 245.1, VoteCount: 14980, RuntimeMinutes: 47, Overview: "A chemistry teacher turns to cooking methamphetamine to secure his family's future.", ReleaseDate: "2008-01-20"},
		{ID: "tv-94605", Title: "Arcane", Year: 2021, Genres: []string{"animation", "drama", "science fiction"}, Rating: 8.7, Popularity: 189.3, VoteCount: 4720, RuntimeMinutes: 41, Overview: "Two sisters end up on opposite sides of a war between a gleaming city and its oppressed underbelly.", ReleaseDate: "2021-11-06"},
		{ID: "tv-87108", Title: "Chernobyl", Year: 2019, Genres: []string{"drama", "history"}, Rating: 8.7, Popularity: 97.6, VoteCount: 6130, RuntimeMinutes: 62, Overview: "The story of the 1986 nuclear disaster and the sacrifices made to contain it.", ReleaseDate: "2019-05-06"},
		{ID: "tv-70785", Title: "Anne with an E", Year: 2017, Genres: []string{"drama", "family"}, Rating: 8.7, Popularity: 48.2, VoteCount: 2890, RuntimeMinutes: 44, Overview: "An imaginative orphan transforms the lives of a brother and sister on Prince Edward Island.", ReleaseDate: "2017-03-19"},
		{ID: "tv-1398", Title: "The Sopranos", Year: 1999, Genres: []string{"drama", "crime"}, Rating: 8.6, Popularity: 112.4, VoteCount: 2960, RuntimeMinutes: 55, Overview: "A New Jersey mob boss balances family life with running a criminal organization, in therapy.", ReleaseDate: "1999-01-10"},
		{ID: "tv-1438", Title: "The Wire", Year: 2002, Genres: []string{"drama", "crime"}, Rating: 8.6, Popularity: 68.9, VoteCount: 2340, RuntimeMinutes: 59, Overview: "Baltimore's drug trade seen through the eyes of dealers and the police who chase them.", ReleaseDate: "2002-06-02"},
		{ID: "tv-60059", Title: "Better Call Saul", Year: 2015, Genres: []string{"drama", "crime"}, Rating: 8.6, Popularity: 131.7, VoteCount: 5680, RuntimeMinutes: 46, Overview: "A small-time lawyer's slide toward becoming the morally flexible Saul Goodman.", ReleaseDate: "2015-02-08"},
		{ID: "tv-31911", Title: "Fullmetal Alchemist: Brotherhood", Year: 2009, Genres: []string{"animation", "action", "adventure"}, Rating: 8.7, Popularity: 92.5, VoteCount: 2310, RuntimeMinutes: 25, Overview: "Two brothers pay the price of forbidden alchemy and hunt the Philosopher's Stone.", ReleaseDate: "2009-04-05"},
		{ID: "tv-85077", Title: "Severance", Year: 2022, Genres: []string{"drama", "mystery", "science fiction"}, Rating: 8.4, Popularity: 105.8, VoteCount: 1890, RuntimeMinutes: 52, Overview: "Office workers surgically split their memories between work and home, then start asking why.", ReleaseDate: "2022-02-18"},
		{ID: "tv-66732", Title: "Stranger Things", Year: 2016, Genres: []string{"drama", "mystery", "science fiction"}, Rating: 8.6, Popularity: 210.4, VoteCount: 17120, RuntimeMinutes: 51, Overview: "A boy vanishes and a small town uncovers a supernatural underside.", ReleaseDate: "2016-07-15"},
		{ID: "tv-42009", Title: "Black Mirror", Year: 2011, Genres: []string{"drama", "science fiction", "thriller"}, Rating: 8.3, Popularity: 88.1, VoteCount: 4980, RuntimeMinutes: 60, Overview: "An anthology of near-future unease about the way we live with technology.", ReleaseDate: "2011-12-04"},
		{ID: "tv-61889", Title: "Mr. Robot", Year: 2015, Genres: []string{"drama", "crime", "thriller"}, Rating: 8.3, Popularity: 71.6, VoteCount: 4450, RuntimeMinutes: 49, Overview: "A vigilante hacker is recruited to take down the corporation he is paid to protect.", ReleaseDate: "2015-06-24"},
		{ID: "tv-48891", Title: "Brooklyn Nine-Nine", Year: 2013, Genres: []string{"comedy", "crime"}, Rating: 8.2, Popularity: 123.9, VoteCount: 4170, RuntimeMinutes: 22, Overview: "A gifted but immature detective clashes with his stoic new captain in Brooklyn's 99th precinct.", ReleaseDate: "2013-09-17"},
		{ID: "tv-95396", Title: "The Bear", Year: 2022, Genres: []string{"comedy", "drama"}, Rating: 8.2, Popularity: 99.7, VoteCount: 1540, RuntimeMinutes: 31, Overview: "A fine-dining chef returns home to run his family's chaotic sandwich shop.", ReleaseDate: "2022-06-23"},
		{ID: "tv-67915", Title: "Midnight Diner: Tokyo Stories", Year: 2016, Genres: []string{"drama"}, Rating: 8.2, Popularity: 14.6, VoteCount: 260, RuntimeMinutes: 24, Overview: "A late-night Tokyo diner serves one dish per customer, and a story with each.", ReleaseDate: "2016-10-21"},
		{ID: "tv-46648", Title: "True Detective", Year: 2014, Genres: []string{"drama", "crime", "mystery"}, Rating: 8.3, Popularity: 80.4, VoteCount: 3890, RuntimeMinutes: 58, Overview: "Seasonal anthologies of detectives consumed by the cases that define them.", ReleaseDate: "2014-01-12"},
	},
	models.DomainDocumentaries: {
		{ID: "doc-70981", Title: "Planet Earth II", Year: 2016, Genres: []string{"documentary"}, Rating: 8.9, Popularity: 44.7, VoteCount: 1180, RuntimeMinutes: 50, Overview: "A planet seen at animal eye level, from mountains to cities.", ReleaseDate: "2016-11-06"},
		{ID: "doc-74313", Title: "Blue Planet II", Year: 2017, Genres: []string{"documentary"}, Rating: 8.8, Popularity: 33.2, VoteCount: 620, RuntimeMinutes: 50, Overview: "New science and new cameras reveal the ocean's strangest frontiers.", ReleaseDate: "2017-10-29"},
		{ID: "doc-98816", Title: "Our Planet", Year: 2019, Genres: []string{"documentary"}, Rating: 8.7, Popularity: 38.9, VoteCount: 780, RuntimeMinutes: 50, Overview: "A survey of the natural world and what remains of it to save.", ReleaseDate: "2019-04-05"},
		{ID: "doc-423204", Title: "Free Solo", Year: 2018, Genres: []string{"documentary", "adventure"}, Rating: 8.1, Popularity: 27.5, VoteCount: 1520, RuntimeMinutes: 100, Overview: "Alex Honnold attempts to climb El Capitan without a rope.", ReleaseDate: "2018-09-28"},
		{ID: "doc-556984", Title: "My Octopus Teacher", Year: 2020, Genres: []string{"documentary"}, Rating: 8.0, Popularity: 24.1, VoteCount: 1090, RuntimeMinutes: 85, Overview: "A filmmaker forges a year-long bond with an octopus in a South African kelp forest.", ReleaseDate: "2020-09-07"},
		{ID: "doc-14286", Title: "Man on Wire", Year: 2008, Genres: []string{"documentary"}, Rating: 7.7, Popularity: 12.8, VoteCount: 980, RuntimeMinutes: 94, Overview: "Philippe Petit's illegal 1974 wire walk between the Twin Towers, told as a heist.", ReleaseDate: "2008-07-25"},
		{ID: "doc-2571", Title: "Koyaanisqatsi", Year: 1982, Genres: []string{"documentary", "music"}, Rating: 7.8, Popularity: 11.4, VoteCount: 680, RuntimeMinutes: 86, Overview: "A wordless portrait of life out of balance, scored by Philip Glass.", ReleaseDate: "1982-04-27"},
		{ID: "doc-376867", Title: "13th", Year: 2016, Genres: []string{"documentary", "history"}, Rating: 7.9, Popularity: 16.3, VoteCount: 890, RuntimeMinutes: 100, Overview: "A history of race, justice and mass incarceration in the United States.", ReleaseDate: "2016-10-07"},
		{ID: "doc-655088", Title: "The Social Dilemma", Year: 2020, Genres: []string{"documentary", "drama"}, Rating: 7.5, Popularity: 21.9, VoteCount: 1340, RuntimeMinutes: 94, Overview: "Industry insiders explain how attention became the product.", ReleaseDate: "2020-09-09"},
		{ID: "doc-438148", Title: "Apollo 11", Year: 2019, Genres: []string{"documentary", "history"}, Rating: 7.9, Popularity: 14.9, VoteCount: 760, RuntimeMinutes: 93, Overview: "The moon landing rebuilt entirely from restored archival footage.", ReleaseDate: "2019-03-01"},
		{ID: "doc-84958", Title: "Jiro Dreams of Sushi", Year: 2011, Genres: []string{"documentary"}, Rating: 7.8, Popularity: 10.7, VoteCount: 710, RuntimeMinutes: 82, Overview: "An 85-year-old sushi master pursues perfection in a ten-seat Tokyo restaurant.", ReleaseDate: "2011-07-30"},
		{ID: "doc-504253", Title: "Honeyland", Year: 2019, Genres: []string{"documentary", "drama"}, Rating: 7.8, Popularity: 8.6, VoteCount: 340, RuntimeMinutes: 89, Overview: "The last wild beekeeper in Europe defends a fragile balance against careless neighbors.", ReleaseDate: "2019-07-26"},
	},
}
