package service

import (
	"fmt"
	"log"

	"pawquest/internal/models"
	"pawquest/internal/repository"
)

// SeedDefaultQuestions populates the question bank on first run. A bank
// with any questions at all is left alone so imports and custom content
// are never duplicated.
func SeedDefaultQuestions(repo *repository.QuestionRepository) error {
	count, err := repo.Count()
	if err != nil {
		return fmt.Errorf("failed to count questions: %w", err)
	}
	if count > 0 {
		return nil
	}

	seeded := 0
	for _, q := range defaultQuestions() {
		if _, err := repo.Insert(q); err != nil {
			return fmt.Errorf("failed to seed question %q: %w", q.Prompt, err)
		}
		seeded++
	}

	log.Printf("Seeded %d default questions", seeded)
	return nil
}

func defaultQuestions() []models.Question {
	var out []models.Question

	add := func(path models.PathType, difficulty int, prompt string, choices []string, answer int) {
		out = append(out, models.Question{
			PathType:    path,
			Difficulty:  difficulty,
			Prompt:      prompt,
			Choices:     choices,
			AnswerIndex: answer,
		})
	}

	// Breeds
	add(models.PathBreeds, 1, "Which breed is the smallest recognized dog breed?",
		[]string{"Chihuahua", "Pomeranian", "Yorkshire Terrier", "Maltese"}, 0)
	add(models.PathBreeds, 1, "Which breed is famous for its spotted coat?",
		[]string{"Dalmatian", "Beagle", "Boxer", "Pointer"}, 0)
	add(models.PathBreeds, 1, "Which of these is a giant breed?",
		[]string{"Great Dane", "Corgi", "Pug", "Shih Tzu"}, 0)
	add(models.PathBreeds, 2, "Which breed was originally bred to herd sheep in Scotland?",
		[]string{"Border Collie", "Basset Hound", "Akita", "Whippet"}, 0)
	add(models.PathBreeds, 2, "The Shiba Inu originates from which country?",
		[]string{"Japan", "China", "Korea", "Thailand"}, 0)
	add(models.PathBreeds, 2, "Which breed is known as the 'sausage dog'?",
		[]string{"Dachshund", "Basenji", "Beagle", "Papillon"}, 0)
	add(models.PathBreeds, 3, "Which breed has a naturally blue-black tongue?",
		[]string{"Chow Chow", "Samoyed", "Husky", "Malamute"}, 0)
	add(models.PathBreeds, 3, "Which retriever breed comes from Nova Scotia?",
		[]string{"Duck Tolling Retriever", "Golden Retriever", "Flat-Coated Retriever", "Labrador Retriever"}, 0)
	add(models.PathBreeds, 3, "The Basenji is notable for being unable to do what?",
		[]string{"Bark", "Swim", "Run fast", "Smell"}, 0)
	add(models.PathBreeds, 4, "Which breed group does the Rhodesian Ridgeback belong to?",
		[]string{"Hound", "Working", "Terrier", "Herding"}, 0)
	add(models.PathBreeds, 4, "Which breed was developed to hunt lions?",
		[]string{"Rhodesian Ridgeback", "Irish Wolfhound", "Borzoi", "Saluki"}, 0)
	add(models.PathBreeds, 4, "The Leonberger takes its name from a town in which country?",
		[]string{"Germany", "Austria", "Switzerland", "France"}, 0)
	add(models.PathBreeds, 5, "Which ancient sighthound is depicted in Egyptian tomb art?",
		[]string{"Saluki", "Greyhound", "Afghan Hound", "Pharaoh Hound"}, 0)
	add(models.PathBreeds, 5, "The Catalburun is distinguished by what unusual feature?",
		[]string{"A split nose", "Six toes", "A curled tail", "No dewclaws"}, 0)
	add(models.PathBreeds, 5, "Which breed is considered the rarest recognized by major kennel clubs?",
		[]string{"Otterhound", "Beagle", "Poodle", "Boxer"}, 0)

	// Training
	add(models.PathTraining, 1, "What is the most common first command taught to puppies?",
		[]string{"Sit", "Roll over", "Speak", "Fetch"}, 0)
	add(models.PathTraining, 1, "What should immediately follow a correct behavior during training?",
		[]string{"A reward", "A nap", "A bath", "A walk"}, 0)
	add(models.PathTraining, 1, "What device makes a sharp sound to mark good behavior?",
		[]string{"Clicker", "Whistle", "Bell", "Horn"}, 0)
	add(models.PathTraining, 2, "Rewarding desired behavior is called what kind of reinforcement?",
		[]string{"Positive", "Negative", "Neutral", "Passive"}, 0)
	add(models.PathTraining, 2, "How long should a puppy training session typically last?",
		[]string{"5-10 minutes", "An hour", "Half a day", "30 seconds"}, 0)
	add(models.PathTraining, 2, "What does 'heel' ask a dog to do?",
		[]string{"Walk beside the handler", "Lie down", "Bark once", "Spin"}, 0)
	add(models.PathTraining, 3, "What is 'luring' in dog training?",
		[]string{"Guiding with a treat", "Pulling the leash", "Calling loudly", "Hiding from the dog"}, 0)
	add(models.PathTraining, 3, "Which window is most critical for puppy socialization?",
		[]string{"3-14 weeks", "1-2 years", "6-12 months", "Birth to 1 week"}, 0)
	add(models.PathTraining, 3, "What is 'proofing' a behavior?",
		[]string{"Practicing it amid distractions", "Writing it down", "Teaching it twice", "Filming it"}, 0)
	add(models.PathTraining, 4, "In shaping, behavior is built by rewarding what?",
		[]string{"Successive approximations", "Only the final behavior", "Random actions", "Eye contact"}, 0)
	add(models.PathTraining, 4, "What schedule of reinforcement best maintains a learned behavior?",
		[]string{"Variable ratio", "Continuous", "Fixed time", "None"}, 0)
	add(models.PathTraining, 4, "A 'release word' tells the dog what?",
		[]string{"The exercise is over", "To bark", "Dinner time", "To fetch"}, 0)
	add(models.PathTraining, 5, "Counter-conditioning changes a dog's response by pairing a trigger with what?",
		[]string{"Something pleasant", "Punishment", "Isolation", "Silence"}, 0)
	add(models.PathTraining, 5, "What is the technical term for a cue given before a behavior?",
		[]string{"Discriminative stimulus", "Reflex arc", "Counter cue", "Prompt fade"}, 0)
	add(models.PathTraining, 5, "Extinction in operant terms means a behavior fades because of what?",
		[]string{"Reinforcement stops", "The dog ages", "Too much exercise", "A louder cue"}, 0)

	// Health
	add(models.PathHealth, 1, "How many teeth does an adult dog normally have?",
		[]string{"42", "32", "28", "50"}, 0)
	add(models.PathHealth, 1, "Which food is toxic to dogs?",
		[]string{"Chocolate", "Carrots", "Rice", "Pumpkin"}, 0)
	add(models.PathHealth, 1, "How do dogs primarily cool themselves down?",
		[]string{"Panting", "Sweating all over", "Shivering", "Shedding"}, 0)
	add(models.PathHealth, 2, "What is a normal body temperature for a dog?",
		[]string{"38-39°C", "36°C", "41°C", "35°C"}, 0)
	add(models.PathHealth, 2, "Which vaccine is legally required for dogs in many countries?",
		[]string{"Rabies", "Bordetella", "Lyme", "Influenza"}, 0)
	add(models.PathHealth, 2, "Xylitol, dangerous to dogs, is commonly found in what?",
		[]string{"Sugar-free gum", "Plain rice", "Cooked chicken", "Apples"}, 0)
	add(models.PathHealth, 3, "Which parasite transmits heartworm?",
		[]string{"Mosquitoes", "Fleas", "Ticks", "Lice"}, 0)
	add(models.PathHealth, 3, "Hip dysplasia most commonly affects which dogs?",
		[]string{"Large breeds", "Toy breeds", "Puppies only", "Only females"}, 0)
	add(models.PathHealth, 3, "What does bloat (GDV) involve?",
		[]string{"A twisted stomach", "An ear infection", "A skin rash", "A broken tooth"}, 0)
	add(models.PathHealth, 4, "Which organ does leptospirosis primarily damage?",
		[]string{"Kidneys", "Heart", "Skin", "Eyes"}, 0)
	add(models.PathHealth, 4, "Brachycephalic breeds are prone to problems with what?",
		[]string{"Breathing", "Hearing", "Digestion", "Balance"}, 0)
	add(models.PathHealth, 4, "What is the gestation period of a dog?",
		[]string{"About 63 days", "About 30 days", "About 90 days", "About 120 days"}, 0)
	add(models.PathHealth, 5, "Which breed commonly carries the MDR1 gene mutation affecting drug sensitivity?",
		[]string{"Collie", "Pug", "Chihuahua", "Shar Pei"}, 0)
	add(models.PathHealth, 5, "Addison's disease in dogs involves which glands?",
		[]string{"Adrenal", "Thyroid", "Salivary", "Pituitary only"}, 0)
	add(models.PathHealth, 5, "What is the medical term for kennel cough?",
		[]string{"Infectious tracheobronchitis", "Parvoviral enteritis", "Distemper", "Rhinitis canis"}, 0)

	// Behavior
	add(models.PathBehavior, 1, "A wagging tail always means a dog is happy. True or not?",
		[]string{"Not always", "Always", "Only in puppies", "Only in small dogs"}, 0)
	add(models.PathBehavior, 1, "Why do dogs sniff each other when meeting?",
		[]string{"To gather information", "To play", "To fight", "By accident"}, 0)
	add(models.PathBehavior, 1, "What does a play bow look like?",
		[]string{"Front down, rear up", "Lying flat", "Standing tall", "Rolling over"}, 0)
	add(models.PathBehavior, 2, "Yawning in dogs can signal what besides tiredness?",
		[]string{"Stress", "Hunger", "Joy", "Cold"}, 0)
	add(models.PathBehavior, 2, "Why do dogs circle before lying down?",
		[]string{"Instinct from flattening bedding", "Dizziness", "Showing off", "Stretching"}, 0)
	add(models.PathBehavior, 2, "'Whale eye' in a dog usually indicates what?",
		[]string{"Discomfort", "Excitement", "Sleepiness", "Hunger"}, 0)
	add(models.PathBehavior, 3, "Resource guarding is a dog protecting what?",
		[]string{"Valued items", "Its shadow", "Other dogs", "The weather"}, 0)
	add(models.PathBehavior, 3, "What is a calming signal?",
		[]string{"Body language that diffuses tension", "A loud bark", "A training treat", "A leash tug"}, 0)
	add(models.PathBehavior, 3, "Separation anxiety most often shows as what?",
		[]string{"Destruction and vocalizing when alone", "Extra sleeping", "Eating faster", "Better recall"}, 0)
	add(models.PathBehavior, 4, "Trigger stacking refers to what?",
		[]string{"Stressors accumulating past threshold", "Toys piled up", "Multiple commands at once", "Fast feeding"}, 0)
	add(models.PathBehavior, 4, "Displacement behaviors appear when a dog feels what?",
		[]string{"Conflicted", "Sleepy", "Hungry", "Warm"}, 0)
	add(models.PathBehavior, 4, "What does a high, stiff tail with slow wags often signal?",
		[]string{"Arousal and potential threat", "Deep sleep", "Submission", "Hunger"}, 0)
	add(models.PathBehavior, 5, "The ladder of aggression describes what?",
		[]string{"Escalating warning signals", "Agility equipment", "Feeding order", "Pack hierarchy myths"}, 0)
	add(models.PathBehavior, 5, "Learned helplessness results from what?",
		[]string{"Inescapable aversive experiences", "Too many treats", "Long walks", "Clicker training"}, 0)
	add(models.PathBehavior, 5, "Social referencing means a dog checks what before reacting?",
		[]string{"Its handler's response", "The weather", "Its reflection", "Other dogs' tails"}, 0)

	// History
	add(models.PathHistory, 1, "Dogs were domesticated from which animal?",
		[]string{"Wolves", "Foxes", "Coyotes", "Jackals"}, 0)
	add(models.PathHistory, 1, "Which dog was the first animal to orbit Earth?",
		[]string{"Laika", "Balto", "Hachiko", "Lassie"}, 0)
	add(models.PathHistory, 1, "Hachiko, famous for loyalty, waited at a station in which city?",
		[]string{"Tokyo", "Osaka", "Kyoto", "Seoul"}, 0)
	add(models.PathHistory, 2, "Balto led a sled team delivering medicine to which Alaskan town?",
		[]string{"Nome", "Juneau", "Fairbanks", "Anchorage"}, 0)
	add(models.PathHistory, 2, "Roughly how long ago were dogs domesticated?",
		[]string{"15,000+ years", "500 years", "2,000 years", "100,000 years"}, 0)
	add(models.PathHistory, 2, "Ancient Egyptians associated dogs with which god?",
		[]string{"Anubis", "Ra", "Osiris", "Horus"}, 0)
	add(models.PathHistory, 3, "Which civilization bred the Xoloitzcuintli?",
		[]string{"Aztec", "Roman", "Viking", "Mongol"}, 0)
	add(models.PathHistory, 3, "St. Bernards were historically bred by monks to do what?",
		[]string{"Rescue travelers in the Alps", "Herd goats", "Guard ships", "Pull carts"}, 0)
	add(models.PathHistory, 3, "The world's first modern dog show was held in which country?",
		[]string{"England", "France", "USA", "Germany"}, 0)
	add(models.PathHistory, 4, "Sergeant Stubby served in which war?",
		[]string{"World War I", "World War II", "Korean War", "Vietnam War"}, 0)
	add(models.PathHistory, 4, "The Kennel Club, the world's oldest, was founded in what year?",
		[]string{"1873", "1901", "1850", "1920"}, 0)
	add(models.PathHistory, 4, "Pekingese dogs were bred exclusively for whom for centuries?",
		[]string{"Chinese imperial court", "Japanese samurai", "Tibetan monks", "Mongol khans"}, 0)
	add(models.PathHistory, 5, "The Bonn-Oberkassel dog, one of the earliest known domestic dogs, dates to about when?",
		[]string{"14,000 years ago", "3,000 years ago", "40,000 years ago", "1,000 years ago"}, 0)
	add(models.PathHistory, 5, "Which Roman writer gave detailed advice on farm dog breeding?",
		[]string{"Columella", "Ovid", "Cicero", "Tacitus"}, 0)
	add(models.PathHistory, 5, "The saluki's image appears on artifacts from which ancient empire?",
		[]string{"Sumerian", "Incan", "Khmer", "Norse"}, 0)

	return out
}
